// Package mail implements the outbound email path: envelope composition,
// attachment handling, and delivery through a pluggable Transport. The
// Dispatcher never panics and never returns an error to its caller; every
// failure mode is normalized into a (success, message) result.
package mail

import "context"

// Attachment is a file carried inline with an envelope. Data is the full
// file content; ContentType falls back to application/octet-stream when the
// extension is unknown.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Envelope is a fully composed outbound message.
type Envelope struct {
	From        string
	To          []string
	Subject     string
	Body        string // plain text
	Attachments []Attachment
}

// Transport performs the actual network send of a composed envelope. It is an
// externally constructed capability, already bound to a server and
// credentials; the Dispatcher neither owns nor configures it.
//
// Implementations must be safe for concurrent use. A call is stateless from
// the caller's point of view: connection reuse is an implementation detail.
type Transport interface {
	Send(ctx context.Context, env *Envelope) error
}
