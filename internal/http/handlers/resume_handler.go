// Resume request handlers.
//
// This file exposes the resume-request form:
//   - GET  /resume  (render form, show pending flash)
//   - POST /resume  (run intake, set flash, redirect back)
//
// The POST always answers with a redirect to GET /resume regardless of
// outcome; feedback travels in the signed flash cookie.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/http/middleware"
	"github.com/donhackett/go-resume-site/internal/services"
	"github.com/donhackett/go-resume-site/internal/web"
)

// ResumeForm renders the request form together with any pending flash.
func (h *Handlers) ResumeForm(c *gin.Context) {
	flash := web.PopFlash(c, h.secretKey)
	web.RenderWithFlash(c, "resume.html", "Request my resume", flash, nil)
}

// ResumeSubmit handles one form submission and redirects back to the form.
//
// Flash categories by outcome: success when sent, info when a duplicate was
// re-sent, danger for invalid input or any failure.
func (h *Handlers) ResumeSubmit(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	format := c.PostForm("format")

	res := h.intake.Submit(c.Request.Context(), name, email, format, c.ClientIP())

	category := "danger"
	switch {
	case res.Status == services.StatusSent && res.Duplicate:
		category = "info"
	case res.Status == services.StatusSent:
		category = "success"
	}
	if res.Status == services.StatusSent {
		middleware.ObserveMailSend(true)
	} else if res.Status == services.StatusSendFailed {
		middleware.ObserveMailSend(false)
	}

	middleware.LoggerFrom(c).Info().
		Str("status", res.Status.String()).
		Bool("duplicate", res.Duplicate).
		Msg("resume request processed")

	web.SetFlash(c, h.secretKey, web.Flash{Message: res.Message, Category: category})
	c.Redirect(http.StatusSeeOther, "/resume")
}
