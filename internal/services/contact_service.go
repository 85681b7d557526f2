// Package services – ContactService
//
// This file implements the ContactService, which ingests contact-form
// messages. The persistence pattern mirrors the resume-request intake:
// validate, store transactionally, then perform a best-effort owner
// notification by email. Notification failure never fails the submission;
// the stored row is the source of truth.
package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/donhackett/go-resume-site/internal/domain"
	"github.com/donhackett/go-resume-site/internal/repo"
	"github.com/donhackett/go-resume-site/internal/validate"
)

// ContactService stores user messages and notifies the site owner.
type ContactService struct {
	DB         *gorm.DB
	Dispatcher MailDispatcher

	// NotifyAddr receives a copy of each message. Empty disables
	// notification; submissions are still stored.
	NotifyAddr string
}

// Submit validates and persists one contact message. It returns
// ErrMissingName or ErrInvalidEmail for bad input, and a wrapped
// ErrPersistence when the insert fails; the notification step is best
// effort and never produces an error.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, body string) (*domain.UserMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)

	if name == "" {
		return nil, ErrMissingName
	}
	if !validate.WellFormedEmail(email) {
		return nil, ErrInvalidEmail
	}

	msg, err := repo.CreateUserMessage(ctx, s.DB, name, email, subject, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.NotifyAddr != "" && s.Dispatcher != nil {
		notifySubject := subject
		if notifySubject == "" {
			notifySubject = "New contact message"
		}
		notifyBody := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, body)
		// Outcome is already logged by the dispatcher.
		s.Dispatcher.Send(ctx, s.NotifyAddr, notifySubject, notifyBody, "")
	}
	return msg, nil
}
