// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the database path, mail relay parameters,
// static asset locations, and the admin shared secret.
//
// The Config struct is constructed once at startup and passed explicitly into
// each component; nothing reads configuration through ambient globals.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// MailConfig holds outbound SMTP relay settings. The relay is optional at
// startup: when incomplete, sends fail at dispatch time with a user-visible
// message instead of crashing the process.
type MailConfig struct {
	Server        string // MAIL_SERVER host
	Port          int    // MAIL_PORT
	UseTLS        bool   // MAIL_USE_TLS (STARTTLS on the submission port)
	UseSSL        bool   // MAIL_USE_SSL (implicit TLS, typically port 465)
	Username      string // MAIL_USERNAME
	Password      string // MAIL_PASSWORD
	DefaultSender string // MAIL_DEFAULT_SENDER
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// App
	DBPath     string // SQLite path
	StaticDir  string // root for static assets (résumé files live under files/)
	ResumePDF  string // résumé filename for format=pdf
	ResumeDOCX string // résumé filename for any other format

	// Secrets. Both are required: the process refuses to start without them.
	AdminPassword  string // shared secret for the admin listing view
	SecretKey      string // signing key for flash cookies
	AdminViewToken string // fixed token embedded in the admin listing path

	// Mail relay
	Mail MailConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// DevMode reports whether the process runs in a development or test
// configuration. Schema auto-migration happens only in dev mode, never
// implicitly in production.
func (c Config) DevMode() bool { return c.GinMode != "release" }

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// App
		DBPath:     getenv("DB_PATH", "site.db"),
		StaticDir:  getenv("STATIC_DIR", "static"),
		ResumePDF:  getenv("RESUME_PDF", "Resume.v3.4.pdf"),
		ResumeDOCX: getenv("RESUME_DOCX", "Resume.v3.4.docx"),

		// Secrets
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		AdminViewToken: getenv("ADMIN_VIEW_TOKEN", "98347"),

		// Mail relay
		Mail: MailConfig{
			Server:        getenv("MAIL_SERVER", ""),
			Port:          getint("MAIL_PORT", 587),
			UseTLS:        getbool("MAIL_USE_TLS", true),
			UseSSL:        getbool("MAIL_USE_SSL", false),
			Username:      getenv("MAIL_USERNAME", ""),
			Password:      getenv("MAIL_PASSWORD", ""),
			DefaultSender: getenv("MAIL_DEFAULT_SENDER", ""),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-resume-site"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.StaticDir) == "" {
		return cfg, errors.New("STATIC_DIR must not be empty")
	}
	// Fail fast, not fail open: without these secrets the admin view and the
	// flash cookies would be unverifiable.
	if strings.TrimSpace(cfg.AdminPassword) == "" {
		return cfg, errors.New("ADMIN_PASSWORD must be set in the environment")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return cfg, errors.New("SECRET_KEY must be set in the environment")
	}
	if strings.TrimSpace(cfg.AdminViewToken) == "" {
		return cfg, errors.New("ADMIN_VIEW_TOKEN must not be empty")
	}
	if cfg.Mail.Port < 1 || cfg.Mail.Port > 65535 {
		return cfg, errors.New("MAIL_PORT must be a valid TCP port")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
