// Package web holds the server-rendered presentation pieces: the embedded
// HTML templates and the signed-cookie flash messages that carry one-shot
// user feedback across the POST/redirect/GET cycle.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page set. Call once at startup and hand the
// result to gin via SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// PageData is the payload every template receives.
type PageData struct {
	Title string
	Flash *Flash
	// Data carries page-specific content (request listings, form values).
	Data any
}

// Render writes an HTML page with the standard payload shape.
func Render(c *gin.Context, status int, name, title string, data any) {
	c.HTML(status, name, PageData{Title: title, Data: data})
}

// RenderWithFlash renders a page and includes the popped flash, if any.
func RenderWithFlash(c *gin.Context, name, title string, flash *Flash, data any) {
	c.HTML(http.StatusOK, name, PageData{Title: title, Flash: flash, Data: data})
}

// RenderError renders the shared error page for 4xx/5xx responses.
func RenderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", PageData{
		Title: http.StatusText(status),
		Data: gin.H{
			"Status":  status,
			"Message": message,
		},
	})
}
