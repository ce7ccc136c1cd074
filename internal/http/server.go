// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/http/handlers"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/http/middleware"
)

type ServerDeps struct {
	Complaints    handlers.ComplaintSubmitter
	Updates       handlers.UpdatePoster
	Notifications handlers.NotificationReader
	Orders        handlers.OrderReader
	Sessions      handlers.SessionStore
	Users         handlers.Authenticator
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Metrics())

	auth := handlers.NewAuthHandler(s.deps.Users)
	complaints := handlers.NewComplaintHandler(s.deps.Complaints)
	updates := handlers.NewUpdateHandler(s.deps.Updates)
	notifications := handlers.NewNotificationHandler(s.deps.Notifications)
	orders := handlers.NewOrderHandler(s.deps.Orders)
	sessions := handlers.NewSessionHandler(s.deps.Sessions)

	api := r.Group("/api")
	{
		api.POST("/login", auth.Login)

		api.POST("/complaint", complaints.Submit)

		api.POST("/order-update", updates.Post)
		api.GET("/order-update/types", updates.Types)
		api.GET("/order-history/:order_id", updates.Timeline)

		api.GET("/notifications/:actor_type/:username", notifications.List)
		api.PUT("/notifications/:id/read", notifications.MarkRead)

		api.GET("/orders/:user_type/:username", orders.List)
		api.GET("/order/:id", orders.Get)
		api.POST("/order/:id/status", orders.UpdateStatus)

		api.POST("/session", sessions.Create)
		api.GET("/session/:token", sessions.Get)
		api.PUT("/session/:token", sessions.Update)
		api.DELETE("/session/:token", sessions.Delete)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
