package presence

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/service/presence"
)

type Handler struct {
	svc presence.PresenceService
}

func NewHandler(svc presence.PresenceService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := r.Group("/staff")
	{
		staff.GET("/presence", h.ListRoster)
		staff.POST("/update-status", h.UpdateStatus)
		staff.POST("/logout", h.Logout)
	}
}

func (h *Handler) ListRoster(c *gin.Context) {
	roster, err := h.svc.ListRoster(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(roster))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), user, &req, c.ClientIP()); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"user_id": user.ID,
		"status":  req.Status,
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), user, c.ClientIP()); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"user_id": user.ID,
		"status":  model.PresenceOffDuty,
	}))
}
