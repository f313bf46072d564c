package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/config"
	"salon/internal/service"
	"salon/internal/transport/websocket"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	hub      *websocket.DashboardHub
	limiter  RateLimiter
}

// NewHandler wires the REST API. hub and limiter are optional.
func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.DashboardHub, limiter RateLimiter) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
		limiter:  limiter,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.NoRoute(func(c *gin.Context) {
		notFoundResponse(c, "route not found")
	})

	router.GET("/healthz", h.health)

	api := router.Group("/api/v1")
	{
		api.GET("/services", h.getCatalog)
		api.GET("/slots", h.rateLimitMiddleware("slots"), h.getSlots)
		api.POST("/appointments", h.rateLimitMiddleware("book"), h.bookAppointment)

		admin := api.Group("/admin")
		{
			admin.POST("/login", h.rateLimitMiddleware("login"), h.login)

			appointments := admin.Group("/appointments", h.authMiddleware())
			{
				appointments.GET("", h.getDashboard)
				appointments.GET("/:id", h.getAppointmentByID)
				appointments.GET("/:id/document", h.getAppointmentDocument)
				appointments.POST("/:id/status", h.updateAppointmentStatus)
				appointments.POST("/:id/approve", h.transitionTo("approved"))
				appointments.POST("/:id/reject", h.transitionTo("rejected"))
				appointments.POST("/:id/pay", h.transitionTo("paid"))
			}
		}
	}

	if h.hub != nil {
		router.GET("/ws/dashboard", h.hub.HandleWebSocket)
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} messageResponseType
// @Router /healthz [get]
func (h *Handler) health(c *gin.Context) {
	messageResponse(c, http.StatusOK, "ok")
}
