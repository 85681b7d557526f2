// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, a structured HTTP access logger that
// scrubs obvious secrets and PII from request metadata before emitting logs.
// The admin listing is gated by a `password` query parameter, so query
// strings must never reach the logs verbatim; form submissions carry email
// addresses, which are scrubbed the same way.
//
// Design goals:
//   - Default-safe: never logs request or response bodies
//   - Redacts the password query parameter and email addresses
//   - Masks sensitive headers (Authorization, Cookie, Set-Cookie, plus custom)
//   - Produces structured JSON logs via zerolog
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders specifies extra HTTP header names whose values will be fully
// replaced with "[REDACTED]". Matching is case-insensitive and merged with
// the built-in sensitive headers.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger returns a Gin middleware that logs each request with
// sensitive values scrubbed.
//
// Behavior:
//   - Logs method, path (route when available), remote IP, user agent,
//     correlation ID, query string (scrubbed), status, latency, and sizes.
//   - Replaces `password=<value>` pairs and email addresses in the query
//     string with "[REDACTED]".
//   - Fully masks Authorization, Cookie, Set-Cookie, and opts.MaskHeaders.
//   - Attaches a request-scoped logger under the "logger" context key.
//   - Level by outcome: error for 5xx, warn for 4xx, info otherwise.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	passwordRE := regexp.MustCompile(`(?i)(password=)[^&]*`)
	emailRE := regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+(@|%40)[a-z0-9.\-]+\.[a-z]{2,}\b`)

	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		masked[strings.ToLower(h)] = struct{}{}
	}

	redact := func(s string) string {
		if s == "" {
			return s
		}
		s = passwordRE.ReplaceAllString(s, "${1}[REDACTED]")
		s = emailRE.ReplaceAllString(s, "[REDACTED]")
		return s
	}

	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		path := c.FullPath()
		if path == "" {
			// Route not matched / 404.
			path = c.Request.URL.Path
		}

		headers := make(map[string]string, len(c.Request.Header))
		for k, vals := range c.Request.Header {
			if _, hide := masked[strings.ToLower(k)]; hide {
				headers[k] = "[REDACTED]"
				continue
			}
			headers[k] = redact(strings.Join(vals, ","))
		}

		l := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", redact(c.Request.UserAgent())).
			Str("query", redact(c.Request.URL.RawQuery)).
			Interface("headers", headers).
			Logger()

		// Make it available to handlers/services.
		c.Set("logger", &l)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		ev := l.With().
			Int("status", status).
			Dur("latency", latency).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}
