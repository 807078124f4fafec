package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/server/http/handlers"
	"github.com/andinaft/bakeryd/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BakeryFacade, pinger handlers.Pinger, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	calendarHandler := handlers.NewCalendarHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	healthHandler := handlers.NewHealthHandler(pinger)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	// The gateway calls this endpoint directly; authentication happens via
	// the payload signature.
	api.POST("/payments/notifications", webhookHandler.Notify)

	api.GET("/calendar", calendarHandler.List)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/orders/:id/transactions", orderHandler.Transactions)
	authed.GET("/orders/:id/next-statuses", orderHandler.NextStatuses)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	authed.POST("/orders/:id/confirm", orderHandler.Confirm)
	authed.POST("/orders/:id/status", orderHandler.ChangeStatus)
	authed.POST("/orders/:id/advance", orderHandler.Advance)
	authed.POST("/cart", cartHandler.Add)
	authed.GET("/cart", cartHandler.List)
	authed.DELETE("/cart", cartHandler.Clear)
	authed.POST("/calendar/close", calendarHandler.Close)
	authed.POST("/calendar/open", calendarHandler.Open)

	return engine
}
