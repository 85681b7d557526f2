// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, and security headers.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Server-rendered pages with shared templates and flash feedback
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/donhackett/go-resume-site/internal/config"
	"github.com/donhackett/go-resume-site/internal/domain"
	"github.com/donhackett/go-resume-site/internal/http/handlers"
	"github.com/donhackett/go-resume-site/internal/http/middleware"
	"github.com/donhackett/go-resume-site/internal/mail"
	"github.com/donhackett/go-resume-site/internal/repo"
	"github.com/donhackett/go-resume-site/internal/services"
	"github.com/donhackett/go-resume-site/internal/web"
)

// requestRepoShim adapts the repository free functions to the
// services.RequestRepo interface expected by the IntakeService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type requestRepoShim struct{}

// FindResumeRequestByEmail proxies repo.FindResumeRequestByEmail.
func (requestRepoShim) FindResumeRequestByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.ResumeRequest, error) {
	return repo.FindResumeRequestByEmail(ctx, db, email)
}

// CreateResumeRequest proxies repo.CreateResumeRequest.
func (requestRepoShim) CreateResumeRequest(ctx context.Context, db *gorm.DB, name, email, ipAddress string) (*domain.ResumeRequest, error) {
	return repo.CreateResumeRequest(ctx, db, name, email, ipAddress)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), compression, CORS and security
// headers, the rendered page set, the resume and contact forms, and the
// password-gated admin routes.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with secret/PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression for rendered pages
//  7. Metrics
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, dispatcher *mail.Dispatcher, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(web.Templates())

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (the admin password travels in the
	// query string; form pages carry email addresses)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to the rendered 500 page (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; the forms are tiny)
	r.Use(limitBody(64 << 10))

	// 6) Compress rendered pages
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    false,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		web.RenderError(c, http.StatusNotFound, "The page you requested does not exist.")
	})
	r.NoMethod(func(c *gin.Context) {
		web.RenderError(c, http.StatusMethodNotAllowed, "That method is not supported here.")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Static assets (stylesheets, images, the résumé files themselves)
	r.Static("/static", cfg.StaticDir)

	// Dependency injection: services ← repo/db/dispatcher
	intakeSvc := &services.IntakeService{
		DB:         db,
		Repo:       requestRepoShim{},
		Dispatcher: dispatcher,
		StaticDir:  cfg.StaticDir,
		ResumePDF:  cfg.ResumePDF,
		ResumeDOCX: cfg.ResumeDOCX,
	}
	contactSvc := &services.ContactService{
		DB:         db,
		Dispatcher: dispatcher,
		NotifyAddr: cfg.Mail.DefaultSender,
	}
	h := handlers.New(db, intakeSvc, contactSvc, dispatcher, cfg.SecretKey, cfg.Mail.DefaultSender)

	// Public pages
	r.GET("/", h.Home)
	r.GET("/books", h.Books)
	r.GET("/references", h.References)
	r.GET("/test", h.Test)
	r.GET("/resume", h.ResumeForm)
	r.POST("/resume", h.ResumeSubmit)
	r.GET("/contact", h.ContactForm)
	r.POST("/contact", h.ContactSubmit)

	// Admin: password-gated listing behind a tokened path, plus the relay probe
	gate := middleware.AdminGate(cfg.AdminPassword)
	r.GET("/secret-email-view-"+cfg.AdminViewToken, gate, h.RequestList)
	r.GET("/test-mail", gate, h.TestMail)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
