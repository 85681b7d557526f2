// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the admin password gate protecting the resume-request
// listing. Access is granted via a `password` query parameter compared in
// constant time against the configured admin password. The access logger in
// this package redacts that parameter before anything reaches the logs.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/web"
)

// AdminGate returns a Gin middleware that rejects requests whose `password`
// query parameter does not match the configured admin password.
//
// On mismatch (or when adminPassword is empty, which locks the route shut) it
// responds 401 with a WWW-Authenticate challenge and the rendered error page,
// and aborts the chain. The comparison is constant time.
func AdminGate(adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.Query("password")

		// An unset password must never mean an open gate.
		if adminPassword == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(adminPassword)) != 1 {
			LoggerFrom(c).Warn().
				Str("remote_ip", c.ClientIP()).
				Msg("admin gate rejected request")

			c.Header("WWW-Authenticate", `Basic realm="resume-admin"`)
			web.RenderError(c, http.StatusUnauthorized, "Access denied.")
			c.Abort()
			return
		}
		c.Next()
	}
}
