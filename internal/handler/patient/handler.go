package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/service/patient"
	"github.com/medipresence/presence-api/internal/service/vital"
)

// Handler serves patient admission and the per-patient vitals trail.
type Handler struct {
	svc      patient.PatientService
	vitalSvc vital.VitalService
}

func NewHandler(svc patient.PatientService, vitalSvc vital.VitalService) *Handler {
	return &Handler{svc: svc, vitalSvc: vitalSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:id", h.Get)
		patients.POST("/:id/vitals", h.RecordVitals)
		patients.GET("/:id/vitals", h.ListVitals)
	}
}

func (h *Handler) Create(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), user, &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"patient_id": p.ID,
		"name":       p.Name,
		"status":     p.Status,
	}))
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) RecordVitals(c *gin.Context) {
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

	var req model.CreateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.vitalSvc.Record(c.Request.Context(), user, patientID, &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"record_id":   record.ID,
		"patient_id":  record.PatientID,
		"recorded_at": record.RecordedAt,
	}))
}

func (h *Handler) ListVitals(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	records, err := h.vitalSvc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}
