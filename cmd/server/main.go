// Command server runs the resume site: server-rendered pages, the
// resume-request and contact forms, the password-gated admin listing, and the
// SMTP relay integration.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/donhackett/go-resume-site/internal/config"
	httpapi "github.com/donhackett/go-resume-site/internal/http"
	"github.com/donhackett/go-resume-site/internal/mail"
	"github.com/donhackett/go-resume-site/internal/observability"
	"github.com/donhackett/go-resume-site/internal/repo"
	"github.com/donhackett/go-resume-site/internal/sysutil"
	"github.com/donhackett/go-resume-site/internal/validate"
)

const version = "1.2.0"

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	log.Info().Str("version", version).Str("mode", cfg.GinMode).Msg("starting resume site")

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	if cfg.DevMode() {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("auto-migration failed")
		}
		log.Info().Msg("schema auto-migrated (dev mode)")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin not installed")
		}
	}

	// Tracing
	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() { _ = shutdownOTel(context.Background()) }()

	// Asset sanity checks. Missing résumé files degrade sends to body-only,
	// so surface the problem at startup instead of in the first request.
	for _, name := range []string{cfg.ResumePDF, cfg.ResumeDOCX} {
		p := filepath.Join(cfg.StaticDir, "files", name)
		if _, err := os.Stat(p); err != nil {
			log.Warn().Str("path", p).Msg("resume file not found")
		}
	}

	// Mail relay
	var transport mail.Transport
	if validate.MailConfigPresent(cfg.Mail, log.Logger) {
		t, err := mail.NewSMTPTransport(
			cfg.Mail.Server, cfg.Mail.Port,
			cfg.Mail.Username, cfg.Mail.Password,
			cfg.Mail.UseTLS, cfg.Mail.UseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid mail relay configuration")
		}
		transport = t
		log.Info().Str("server", cfg.Mail.Server).Int("port", cfg.Mail.Port).Msg("mail relay configured")
	} else {
		log.Warn().Msg("mail relay not configured; resume sends will fail with a user-visible message")
	}
	dispatcher := mail.NewDispatcher(transport, cfg.Mail.DefaultSender, log.Logger)

	// HTTP
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, dispatcher, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
