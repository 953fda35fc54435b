package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/nutrifarma/advisor-api/internal/advisory"
	"github.com/nutrifarma/advisor-api/internal/config"
	advisoryHandler "github.com/nutrifarma/advisor-api/internal/handler/advisory"
	logbookHandler "github.com/nutrifarma/advisor-api/internal/handler/logbook"
	recordHandler "github.com/nutrifarma/advisor-api/internal/handler/record"
	sessionHandler "github.com/nutrifarma/advisor-api/internal/handler/session"
	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/registry"
	"github.com/nutrifarma/advisor-api/internal/router"
	"github.com/nutrifarma/advisor-api/internal/session"
	"github.com/nutrifarma/advisor-api/pkg/token"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	sessions := session.NewStore(cfg.Session.TTL())
	tokens := token.NewService(cfg.Secrets.TokenSecret, cfg.Session.TTL())
	consent := middleware.NewConsentMiddleware(tokens, sessions)

	advisoryClient := advisory.NewClient(advisory.Config{
		BaseURL: cfg.Advisory.BaseURL,
		APIKey:  cfg.Secrets.GeminiAPIKey,
		Model:   cfg.Advisory.Model,
		Timeout: cfg.Advisory.Timeout(),
	})
	registryClient := registry.NewClient(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		Timeout: cfg.Registry.Timeout(),
	})

	r := router.New(
		router.Config{
			RateLimit: rate.Limit(cfg.Server.RateLimit),
			RateBurst: cfg.Server.RateBurst,
		},
		sessionHandler.NewHandler(sessions, tokens, consent),
		recordHandler.NewHandler(consent),
		logbookHandler.NewHandler(consent),
		advisoryHandler.NewHandler(consent, advisoryClient, registryClient),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
