// Contact form handlers.
//
//   - GET  /contact  (render form, show pending flash)
//   - POST /contact  (store message, notify owner, redirect back)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/http/middleware"
	"github.com/donhackett/go-resume-site/internal/services"
	"github.com/donhackett/go-resume-site/internal/web"
)

// ContactForm renders the contact form together with any pending flash.
func (h *Handlers) ContactForm(c *gin.Context) {
	flash := web.PopFlash(c, h.secretKey)
	web.RenderWithFlash(c, "contact.html", "Contact", flash, nil)
}

// ContactSubmit stores one message and redirects back to the form.
func (h *Handlers) ContactSubmit(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	subject := c.PostForm("subject")
	body := c.PostForm("body")

	_, err := h.contact.Submit(c.Request.Context(), name, email, subject, body)

	var flash web.Flash
	switch {
	case err == nil:
		flash = web.Flash{Message: "Thanks for reaching out! I'll get back to you soon.", Category: "success"}
	case errors.Is(err, services.ErrMissingName):
		flash = web.Flash{Message: "Please tell me your name.", Category: "danger"}
	case errors.Is(err, services.ErrInvalidEmail):
		flash = web.Flash{Message: "Please provide a valid email address.", Category: "danger"}
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("contact submission failed")
		flash = web.Flash{Message: "An error occurred. Please try again.", Category: "danger"}
	}

	web.SetFlash(c, h.secretKey, flash)
	c.Redirect(http.StatusSeeOther, "/contact")
}
