package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Dispatcher composes outbound messages and hands them to a Transport.
// It is deliberately side-effect-isolated: pure composition plus one external
// call, so tests can substitute a recording transport for network I/O.
//
// Send is total with respect to error handling: it returns (false, reason)
// for every failure mode and never lets an error escape.
type Dispatcher struct {
	// Transport is the injected send capability. A nil transport means the
	// relay was never configured; sends report that instead of attempting
	// a connection.
	Transport Transport

	// Sender is the default From identity for all outbound mail.
	Sender string

	// Log receives warnings (missing attachments) and full send errors.
	Log zerolog.Logger
}

// NewDispatcher builds a Dispatcher around a transport and sender identity.
func NewDispatcher(t Transport, sender string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{Transport: t, Sender: sender, Log: log}
}

// Send composes and delivers one message.
//
// attachmentPath, when non-empty, names a file expected on disk. A missing or
// irregular file is non-fatal: one warning is logged and the send proceeds
// without the attachment. Transport failures are logged in full and reported
// back as a short user-facing reason.
func (d *Dispatcher) Send(ctx context.Context, recipient, subject, body, attachmentPath string) (bool, string) {
	if d == nil || d.Transport == nil {
		return false, "mail transport not initialized"
	}
	if d.Sender == "" {
		return false, "sender not configured"
	}

	env := &Envelope{
		From:    d.Sender,
		To:      []string{recipient},
		Subject: subject,
		Body:    body,
	}

	if attachmentPath != "" {
		if att, ok := d.loadAttachment(attachmentPath); ok {
			env.Attachments = append(env.Attachments, att)
		}
	}

	d.Log.Info().
		Str("to", recipient).
		Str("from", d.Sender).
		Int("attachments", len(env.Attachments)).
		Msg("sending email")

	if err := d.Transport.Send(ctx, env); err != nil {
		d.Log.Error().Err(err).Str("to", recipient).Msg("failed to send email")
		return false, fmt.Sprintf("Error sending email: %v", err)
	}
	return true, fmt.Sprintf("Email sent to %s", recipient)
}

// loadAttachment reads the file at path fully into memory. It reports ok=false
// (with one warning) when the path does not resolve to a regular file, which
// degrades the send to body-only rather than failing it.
func (d *Dispatcher) loadAttachment(path string) (Attachment, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		d.Log.Warn().Str("path", path).Msg("attachment not found, sending without it")
		return Attachment{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		d.Log.Warn().Err(err).Str("path", path).Msg("attachment unreadable, sending without it")
		return Attachment{}, false
	}
	name := filepath.Base(path)
	return Attachment{
		Filename:    name,
		ContentType: GuessContentType(name),
		Data:        data,
	}, true
}
