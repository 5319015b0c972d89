package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suinigeria/events-api/internal/config"
	"github.com/suinigeria/events-api/internal/db"
	httpx "github.com/suinigeria/events-api/internal/http"
	"github.com/suinigeria/events-api/internal/notifications"
	"github.com/suinigeria/events-api/internal/observability"
	mongorepo "github.com/suinigeria/events-api/internal/repo/mongo"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	// tracing is best effort; the API runs fine without a collector
	shutdownTracer, err := observability.InitTracer(context.Background(), "events-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// registry connection
	client, err := db.Connect(cfg.MongoURI)

	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm()

	store := mongorepo.NewRegistrationsRepo(client.Database(cfg.MongoDB), prom)

	// mail goes through Resend when a credential is present, otherwise to the log
	var mailer notifications.Mailer

	if cfg.ResendAPIKey != "" {
		mailer = notifications.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		log.Warn("RESEND_API_KEY not set, mail will only be logged")
		mailer = notifications.NewLogMailer(log)
	}

	sender := notifications.NewSender(mailer, log, cfg.AdminEmail, cfg.Production())
	dispatcher := notifications.NewDispatcher(log, 10*time.Second, prom)

	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return client.Ping(ctx, nil)
	}

	// set up routers
	router := httpx.NewRouter(log, store, sender, dispatcher, prom, ping, cfg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}

		// let in-flight notifications drain before tearing down the clients
		dispatcher.Wait()

		_ = shutdownTracer(ctx)
		_ = client.Disconnect(ctx)
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
