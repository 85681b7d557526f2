// Package services – IntakeService
//
// This file implements the IntakeService, which owns the end-to-end handling
// of one resume-request submission: validate the address, deduplicate or
// persist the request record, select the résumé attachment, dispatch the
// email, and produce user feedback.
//
// Every expected condition is an explicit IntakeResult variant rather than a
// raised error, so handlers translate outcomes to flash messages without
// type-switching on error values. Persistence always completes (commit or
// rollback) strictly before the dispatch attempt begins, and a failed
// dispatch never rolls back the already-committed row: the record is a log
// of requests, not a guarantee of delivery.
//
// Observability: Submit is OpenTelemetry-instrumented; spans carry the
// requested format and the terminal status.
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/donhackett/go-resume-site/internal/domain"
	"github.com/donhackett/go-resume-site/internal/repo"
	"github.com/donhackett/go-resume-site/internal/validate"
)

// IntakeStatus is the terminal state of one intake run.
type IntakeStatus int

const (
	// StatusInvalid: the recipient address failed validation; nothing was
	// persisted and no dispatch was attempted.
	StatusInvalid IntakeStatus = iota
	// StatusPersistFailed: the duplicate lookup or the insert failed; the
	// transaction was rolled back and no dispatch was attempted.
	StatusPersistFailed
	// StatusSent: the record is committed (or was already present) and the
	// dispatcher reported success.
	StatusSent
	// StatusSendFailed: the record is committed but the dispatcher reported
	// failure. The row is deliberately kept.
	StatusSendFailed
)

// String returns a short label for logging and span attributes.
func (s IntakeStatus) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusPersistFailed:
		return "persist_failed"
	case StatusSent:
		return "sent"
	case StatusSendFailed:
		return "send_failed"
	default:
		return "unknown"
	}
}

// IntakeResult is the outcome of one submission, consumed by the HTTP layer.
type IntakeResult struct {
	Status IntakeStatus
	// Duplicate is set when an earlier request with the same email already
	// existed. Informational: the résumé is still re-sent.
	Duplicate bool
	// Message is the user-visible feedback (flash text). Never contains
	// internal error detail.
	Message string
	// Request is the persisted (or previously existing) row, nil for
	// Invalid/PersistFailed outcomes.
	Request *domain.ResumeRequest
}

// RequestRepo defines the repository contract required by IntakeService.
type RequestRepo interface {
	FindResumeRequestByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.ResumeRequest, error)
	CreateResumeRequest(ctx context.Context, db *gorm.DB, name, email, ipAddress string) (*domain.ResumeRequest, error)
}

// MailDispatcher is the outbound-send capability consumed by the workflow.
type MailDispatcher interface {
	Send(ctx context.Context, recipient, subject, body, attachmentPath string) (bool, string)
}

// IntakeService coordinates one resume-request submission per call. It holds
// no per-request state; concurrent Submit calls only share the database and
// may race on the duplicate lookup, which is tolerated (email is not a
// uniqueness key).
type IntakeService struct {
	DB         *gorm.DB
	Repo       RequestRepo
	Dispatcher MailDispatcher

	// StaticDir is the static-files root; résumé files live under files/.
	StaticDir string
	// ResumePDF and ResumeDOCX are the attachment filenames per format.
	ResumePDF  string
	ResumeDOCX string
}

// Submit runs the full intake workflow for one form submission and returns
// its outcome. It never returns an error; persistence failures surface as
// StatusPersistFailed with a generic user message.
func (s *IntakeService) Submit(ctx context.Context, name, email, format, remoteIP string) IntakeResult {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.String("resume.format", format)),
	)
	defer span.End()

	res := s.submit(ctx, name, email, format, remoteIP)
	span.SetAttributes(
		attribute.String("intake.status", res.Status.String()),
		attribute.Bool("intake.duplicate", res.Duplicate),
	)
	return res
}

func (s *IntakeService) submit(ctx context.Context, name, email, format, remoteIP string) IntakeResult {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if !validate.WellFormedEmail(email) {
		return IntakeResult{
			Status:  StatusInvalid,
			Message: "Please provide a valid email address.",
		}
	}

	// Deduplicate or persist. A concurrent create for the same email may
	// slip past this lookup; the resulting second row is acceptable.
	var (
		req       *domain.ResumeRequest
		duplicate bool
	)
	existing, err := s.Repo.FindResumeRequestByEmail(ctx, s.DB, email)
	switch {
	case err == nil:
		req = existing
		duplicate = true
	case errors.Is(err, repo.ErrNotFound):
		created, cerr := s.Repo.CreateResumeRequest(ctx, s.DB, name, email, remoteIP)
		if cerr != nil {
			return IntakeResult{
				Status:  StatusPersistFailed,
				Message: "An error occurred. Please try again.",
			}
		}
		req = created
	default:
		return IntakeResult{
			Status:  StatusPersistFailed,
			Message: "An error occurred. Please try again.",
		}
	}

	// Persistence is settled; only now does dispatch begin.
	subject := "Your Requested Resume"
	body := fmt.Sprintf(
		"Hello %s,\n\nThank you for your interest. Attached is the resume you requested.",
		name,
	)
	attachment := filepath.Join(s.StaticDir, "files", s.attachmentName(format))

	ok, msg := s.Dispatcher.Send(ctx, email, subject, body, attachment)
	status := StatusSent
	if !ok {
		status = StatusSendFailed
	}
	if duplicate && ok {
		msg = "You've already requested a resume. Sending another copy! " + msg
	}
	return IntakeResult{
		Status:    status,
		Duplicate: duplicate,
		Message:   msg,
		Request:   req,
	}
}

// attachmentName maps the requested format to a résumé filename: "pdf" gets
// the PDF, anything else the DOCX.
func (s *IntakeService) attachmentName(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "pdf") || strings.TrimSpace(format) == "" {
		return s.ResumePDF
	}
	return s.ResumeDOCX
}
