// Admin handlers.
//
// These endpoints sit behind the password gate middleware:
//   - GET /secret-email-view-<token>  (paginated resume-request listing)
//   - GET /test-mail                  (send a probe message via the relay)
//
// The listing path carries a fixed token segment on top of the password
// check, keeping it out of the obvious URL space.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/http/middleware"
	"github.com/donhackett/go-resume-site/internal/repo"
	"github.com/donhackett/go-resume-site/internal/web"
)

// RequestList renders the resume-request listing, newest first.
func (h *Handlers) RequestList(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	total, err := repo.CountResumeRequests(ctx, h.db)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("counting resume requests failed")
		web.RenderError(c, http.StatusInternalServerError, "Could not load the request listing.")
		return
	}

	items, err := repo.ListResumeRequestsPage(ctx, h.db, (page-1)*pageSize, pageSize)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("listing resume requests failed")
		web.RenderError(c, http.StatusInternalServerError, "Could not load the request listing.")
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	web.Render(c, http.StatusOK, "requests.html", "Resume requests", gin.H{
		"Requests":   items,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages,
	})
}

// TestMail sends a probe message through the configured relay and reports the
// dispatcher's verdict. The recipient defaults to the configured sender and
// can be overridden with ?to=.
func (h *Handlers) TestMail(c *gin.Context) {
	to := c.Query("to")
	if to == "" {
		to = h.defaultSender
	}
	if to == "" {
		c.String(http.StatusServiceUnavailable, "mail relay is not configured")
		return
	}

	ok, msg := h.dispatcher.Send(c.Request.Context(), to,
		"Mail relay test", "This is a test message from the resume site.", "")
	middleware.ObserveMailSend(ok)
	if !ok {
		c.String(http.StatusBadGateway, msg)
		return
	}
	c.String(http.StatusOK, msg)
}
