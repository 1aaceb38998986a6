package medication

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/service/medication"
)

type Handler struct {
	svc medication.MedicationService
}

func NewHandler(svc medication.MedicationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/patients/:id/medications", h.Schedule)
	r.GET("/patients/:id/medications", h.ListByPatient)
	r.POST("/medications/:id/mark-administered", h.MarkAdministered)
}

func (h *Handler) Schedule(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.ScheduleMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med, err := h.svc.Schedule(c.Request.Context(), user, patientID, &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"medication_id":  med.ID,
		"next_dose_time": med.NextDoseTime,
		"status":         med.Status,
	}))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	meds, err := h.svc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(meds))
}

func (h *Handler) MarkAdministered(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	// The body is optional; administration time defaults to now.
	var req model.AdministerMedicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
	}

	med, err := h.svc.MarkAdministered(c.Request.Context(), user, medicationID, &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"medication_id":        med.ID,
		"last_administered_at": med.LastAdministeredAt,
		"next_dose_time":       med.NextDoseTime,
		"status":               med.Status,
	}))
}
