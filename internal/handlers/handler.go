package handlers

import (
	"net/http"

	_ "incomfort/docs" // swagger spec
	"incomfort/internal/logger"
	"incomfort/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// Option customises a Handler.
type Option func(*Handler)

// WithMetrics serves h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(hd *Handler) { hd.metrics = h }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, o := range opts {
		o(h)
	}
	return h
}

// authEnabled reports whether sign-in and the bearer middleware are installed.
func (h *Handler) authEnabled() bool {
	return h.services.Authorization != nil
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	if h.authEnabled() {
		h.registerAuthRoutes(router)
	}

	h.registerAPIRoutes(router)

	// state stream, same port and same bearer check as the API
	if h.authEnabled() {
		router.GET("/ws", h.operatorMiddleware, h.wsConnect)
	} else {
		router.GET("/ws", h.wsConnect)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	if h.authEnabled() {
		api.Use(h.operatorMiddleware)
	}
	h.registerHeaterRoutes(api)
}

func (h *Handler) registerHeaterRoutes(api *gin.RouterGroup) {
	heaters := api.Group("/heaters")
	{
		heaters.GET("", h.listHeaters)
		heaters.GET("/:heater", h.getHeater)
		heaters.POST("/:heater/refresh", h.refreshHeater)
		// Body example: {"setpoint_c": 20.5}
		heaters.PUT("/:heater/setpoint", h.setSetpoint)
		heaters.GET("/:heater/munin", h.muninReport)
	}
}
