// HTTP handlers for the resume site.
//
// This file declares the service contracts the transport layer consumes and
// the Handlers aggregate that binds them. Handlers are transport-thin: they
// read form values, call application services, and translate outcomes into
// rendered pages, flashes, and redirects.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/donhackett/go-resume-site/internal/domain"
	"github.com/donhackett/go-resume-site/internal/services"
	"github.com/donhackett/go-resume-site/internal/utils"
)

//
// Service contracts (context-aware)
//

// IntakeService runs the resume-request workflow for one submission.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IntakeService interface {
	// Submit validates, persists, and dispatches one resume request.
	Submit(ctx context.Context, name, email, format, remoteIP string) services.IntakeResult
}

// ContactService ingests contact-form messages.
type ContactService interface {
	// Submit validates and stores one message, then notifies the site owner.
	Submit(ctx context.Context, name, email, subject, body string) (*domain.UserMessage, error)
}

// MailDispatcher is the outbound-send capability used by the mail debug
// endpoint.
type MailDispatcher interface {
	Send(ctx context.Context, recipient, subject, body, attachmentPath string) (bool, string)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the site. It depends on abstract
// service interfaces to keep transport concerns separate from business logic;
// the admin listing reads through the repository directly, as there is no
// workflow behind it.
type Handlers struct {
	db         *gorm.DB
	intake     IntakeService
	contact    ContactService
	dispatcher MailDispatcher

	// secretKey signs the flash cookies.
	secretKey string
	// defaultSender receives the mail-debug test message.
	defaultSender string
}

// New constructs a Handlers instance bound to the given services.
func New(db *gorm.DB, intake IntakeService, contact ContactService, dispatcher MailDispatcher, secretKey, defaultSender string) *Handlers {
	return &Handlers{
		db:            db,
		intake:        intake,
		contact:       contact,
		dispatcher:    dispatcher,
		secretKey:     secretKey,
		defaultSender: defaultSender,
	}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
