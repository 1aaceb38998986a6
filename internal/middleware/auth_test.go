package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medipresence/presence-api/internal/model"
	jwtauth "github.com/medipresence/presence-api/pkg/auth"
)

type fakeAuthService struct {
	users map[string]*model.User
}

func (s *fakeAuthService) Register(_ context.Context, _ *model.RegisterRequest) (*model.User, error) {
	return nil, nil
}

func (s *fakeAuthService) Login(_ context.Context, _ *model.LoginRequest, _ string) (*model.LoginResponse, error) {
	return nil, nil
}

func (s *fakeAuthService) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, context.Canceled
}

func newTestRouter(t *testing.T, users map[string]*model.User) (*gin.Engine, jwtauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := jwtauth.NewJWTService("test-secret", time.Hour)
	mw := NewAuthMiddleware(jwtSvc, &fakeAuthService{users: users})

	r := gin.New()
	protected := r.Group("", mw.Authenticate())
	protected.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	admin := protected.Group("", mw.RequireRole(model.RoleAdmin))
	admin.GET("/admin-only", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwtSvc
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := doRequest(r, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	users := map[string]*model.User{
		"nurse_amy": {ID: uuid.New(), Username: "nurse_amy", Role: model.RoleNurse, IsActive: true},
	}
	r, jwtSvc := newTestRouter(t, users)

	token, err := jwtSvc.GenerateToken("nurse_amy")
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	users := map[string]*model.User{
		"gone": {ID: uuid.New(), Username: "gone", Role: model.RoleStaff, IsActive: false},
	}
	r, jwtSvc := newTestRouter(t, users)

	token, err := jwtSvc.GenerateToken("gone")
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsNonAdmins(t *testing.T) {
	users := map[string]*model.User{
		"nurse_amy": {ID: uuid.New(), Username: "nurse_amy", Role: model.RoleNurse, IsActive: true},
		"boss":      {ID: uuid.New(), Username: "boss", Role: model.RoleAdmin, IsActive: true},
	}
	r, jwtSvc := newTestRouter(t, users)

	nurseToken, err := jwtSvc.GenerateToken("nurse_amy")
	require.NoError(t, err)
	w := doRequest(r, "/admin-only", nurseToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := jwtSvc.GenerateToken("boss")
	require.NoError(t, err)
	w = doRequest(r, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
