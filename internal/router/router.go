package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/medipresence/presence-api/internal/handler"
	"github.com/medipresence/presence-api/internal/middleware"
	"github.com/medipresence/presence-api/internal/model"
	"github.com/medipresence/presence-api/pkg/metrics"
)

// Handler registers a resource's routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

// AuthHandler additionally exposes the routes reachable without a token.
type AuthHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Handlers struct {
	Base       *handler.Handler
	Auth       AuthHandler
	Presence   Handler
	Patient    Handler
	Medication Handler
	CarePlan   Handler
	Task       Handler
	Alert      Handler
	Audit      Handler
	WS         Handler
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
}

func New(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorLogger(),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{engine: engine, auth: auth, handlers: handlers}
}

// Setup wires every route. Paths are mounted at the root to match the
// dashboard clients.
func (r *Router) Setup() {
	root := r.engine.Group("")

	health := root.Group("/health")
	{
		health.GET("/live", r.handlers.Base.LivenessCheck)
		health.GET("/ready", r.handlers.Base.ReadinessCheck)
	}
	root.GET("/metrics", r.handlers.Base.MetricsHandler)

	r.handlers.Auth.RegisterPublicRoutes(root)

	// The websocket endpoint authenticates via query token on the client
	// side of the dashboard; the upgrade itself is open.
	r.handlers.WS.RegisterRoutes(root)

	protected := root.Group("")
	protected.Use(r.auth.Authenticate())
	{
		r.handlers.Auth.RegisterRoutes(protected)
		r.handlers.Presence.RegisterRoutes(protected)
		r.handlers.Patient.RegisterRoutes(protected)
		r.handlers.Medication.RegisterRoutes(protected)
		r.handlers.CarePlan.RegisterRoutes(protected)
		r.handlers.Task.RegisterRoutes(protected)
		r.handlers.Alert.RegisterRoutes(protected)

		admin := protected.Group("")
		admin.Use(r.auth.RequireRole(model.RoleAdmin))
		r.handlers.Audit.RegisterRoutes(admin)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
