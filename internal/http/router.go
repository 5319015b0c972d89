package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/suinigeria/events-api/internal/config"
	"github.com/suinigeria/events-api/internal/http/handlers"
	"github.com/suinigeria/events-api/internal/http/middlewares"
	"github.com/suinigeria/events-api/internal/notifications"
	"github.com/suinigeria/events-api/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RegistrationStore is everything the HTTP surface needs from the registry. Both the
// Mongo repo and the in-memory repo satisfy it.
type RegistrationStore interface {
	handlers.RegistrationCreator
	handlers.RegistrationAdminStore
}

func NewRouter(log *slog.Logger, store RegistrationStore, sender *notifications.Sender, dispatcher *notifications.Dispatcher, prom *observability.Prom, ping func() error, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(otelgin.Middleware("events-api"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))

	// health + metrics
	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(prom.Handler()))

	// wire up handlers
	registrationHandler := handlers.NewRegistrationHandler(store, sender, dispatcher, log)
	adminHandler := handlers.NewAdminHandler(store, sender, dispatcher, log)
	eventsHandler := handlers.NewEventsHandler()

	api := r.Group("/api")
	api.GET("/events", eventsHandler.List)
	api.POST("/register", registrationHandler.Register)

	// the admin surface carries no auth; it is only reachable through the team's
	// private ingress
	admin := api.Group("/admin")
	admin.POST("/update-status", adminHandler.UpdateStatus)
	admin.GET("/registrations", adminHandler.List)
	admin.GET("/test-email", adminHandler.TestEmail)

	return r
}
