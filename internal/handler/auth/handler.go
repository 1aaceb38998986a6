package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/internal/service/auth"
)

type Handler struct {
	svc auth.AuthService
}

func NewHandler(svc auth.AuthService) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes wires the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	user, ok := handler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}
