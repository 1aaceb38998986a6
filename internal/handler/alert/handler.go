package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/service/alert"
)

type Handler struct {
	svc alert.AlertService
}

func NewHandler(svc alert.AlertService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	alerts := r.Group("/alerts")
	{
		alerts.GET("", h.List)
		alerts.POST("/:id/acknowledge", h.Acknowledge)
	}
}

// List returns alerts nobody has acknowledged yet, newest first.
func (h *Handler) List(c *gin.Context) {
	alerts, err := h.svc.ListUnacknowledged(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(alerts))
}

func (h *Handler) Acknowledge(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid alert ID"))
		return
	}

	a, err := h.svc.Acknowledge(c.Request.Context(), user, alertID, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"alert_id":        a.ID,
		"acknowledged":    a.Acknowledged,
		"acknowledged_at": a.AcknowledgedAt,
	}))
}
