package careplan

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/service/careplan"
)

type Handler struct {
	svc careplan.CarePlanService
}

func NewHandler(svc careplan.CarePlanService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/patients/:id/care-plan", h.AddStep)
	r.GET("/patients/:id/care-plan", h.ListByPatient)
	r.POST("/care-plan/:id/status", h.UpdateStatus)
}

func (h *Handler) AddStep(c *gin.Context) {
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

	var req model.CreateCarePlanStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	step, err := h.svc.AddStep(c.Request.Context(), user, patientID, &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"step_id": step.ID,
		"title":   step.Title,
		"status":  step.Status,
	}))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	steps, err := h.svc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(steps))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	stepID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid step ID"))
		return
	}

	var req model.UpdateCarePlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	step, err := h.svc.UpdateStatus(c.Request.Context(), user, stepID, req.Status, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"step_id":      step.ID,
		"status":       step.Status,
		"completed_at": step.CompletedAt,
	}))
}
