// Package router assembles the stub backend's gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/infrastructure/logger"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/handler"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
)

// DefaultPrefix is the path every resource is served under
const DefaultPrefix = "/api"

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type registration struct {
	registrar  RouteRegistrar
	middleware []gin.HandlerFunc
}

// Router manages HTTP route registration
type Router struct {
	engine        *gin.Engine
	prefix        string
	registrations []registration
	middleware    []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithPrefix sets the path prefix of the API group
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// WithMiddleware adds middleware to the API group
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine: engine,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar whose routes run behind mw
func (r *Router) Register(registrar RouteRegistrar, mw ...gin.HandlerFunc) *Router {
	r.registrations = append(r.registrations, registration{registrar: registrar, middleware: mw})
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.prefix, r.middleware...)
	for _, reg := range r.registrations {
		reg.registrar.RegisterRoutes(api.Group("", reg.middleware...))
	}
}

// Config wires the stub engine
type Config struct {
	Logger *zap.Logger
	Tokens *auth.JWTService
	// Metrics is optional
	Metrics *middleware.HTTPMetrics
}

// New builds the stub backend over db: every resource needs an Admin
// token except vendor orders, which vendors may also read and update.
func New(db *memdb.DB, cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Handler())
	}

	admin := middleware.RequireRoles(identity.RoleAdmin)
	r := NewRouter(engine, WithMiddleware(middleware.JWTAuth(middleware.JWTConfig{
		Validator: cfg.Tokens,
		SkipPaths: []string{DefaultPrefix + handler.LoginPath},
	})))
	r.Register(handler.NewAuthHandler(db, cfg.Tokens)).
		Register(handler.NewLocationHandler(db), admin).
		Register(handler.NewCategoryHandler(db), admin).
		Register(handler.NewCouponHandler(db), admin).
		Register(handler.NewUserHandler(db), admin).
		Register(handler.NewOrderHandler(db), admin).
		Register(handler.NewVendorOrderHandler(db), middleware.RequireRoles(identity.RoleAdmin, identity.RoleVendor)).
		Register(handler.NewReviewHandler(db), admin).
		Register(handler.NewWalletHandler(db), admin).
		Register(handler.NewPointsHandler(db), admin).
		Register(handler.NewErrorLogHandler(db), admin)
	r.Setup()
	return engine
}
