package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTPTransport delivers envelopes through an SMTP relay. It supports three
// postures: implicit TLS (UseSSL, typically port 465), STARTTLS on the
// submission port (UseTLS, typically 587), and plain TCP for local dev
// relays. AUTH is attempted only when credentials are set and the connection
// is encrypted; sending PLAIN auth over cleartext is refused by net/smtp.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool // STARTTLS
	UseSSL   bool // implicit TLS
}

// NewSMTPTransport builds a transport from relay settings. It returns an
// error when the host is empty so that a misconfigured relay surfaces at
// construction time rather than as a runtime lookup miss.
func NewSMTPTransport(host string, port int, username, password string, useTLS, useSSL bool) (*SMTPTransport, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp: relay host is required")
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("smtp: invalid relay port %d", port)
	}
	return &SMTPTransport{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		UseTLS:   useTLS,
		UseSSL:   useSSL,
	}, nil
}

// Send composes the MIME message for env and delivers it. The context bounds
// connection setup indirectly through the dialer; a hung relay is otherwise
// cut off by the server's own timeout.
func (t *SMTPTransport) Send(ctx context.Context, env *Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(env.To) == 0 {
		return fmt.Errorf("smtp: no recipients")
	}

	msg := BuildMIME(env)
	addr := fmt.Sprintf("%s:%d", t.Host, t.Port)
	from := bareAddress(env.From)

	var auth smtp.Auth
	if t.Username != "" && t.Password != "" && (t.UseTLS || t.UseSSL) {
		auth = smtp.PlainAuth("", t.Username, t.Password, t.Host)
	}

	if t.UseSSL {
		return t.sendImplicitTLS(addr, auth, from, env.To, msg)
	}
	// smtp.SendMail negotiates STARTTLS on its own when the server offers it.
	return smtp.SendMail(addr, auth, from, env.To, msg)
}

// sendImplicitTLS dials a TLS tunnel first (SMTPS) and then speaks SMTP
// inside it.
func (t *SMTPTransport) sendImplicitTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: t.Host})
	if err != nil {
		return fmt.Errorf("smtp: dial tls: %w", err)
	}
	c, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: new client: %w", err)
	}
	defer func() { _ = c.Close() }()

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: rcpt to %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: close data: %w", err)
	}
	return c.Quit()
}

// BuildMIME renders env as an RFC 2045 message: a plain-text body, or a
// multipart/mixed message with base64-encoded attachments when any are
// present.
func BuildMIME(env *Envelope) []byte {
	var b bytes.Buffer

	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", env.From)
	header("To", strings.Join(env.To, ", "))
	header("Subject", strings.TrimSpace(env.Subject))
	header("MIME-Version", "1.0")

	if len(env.Attachments) == 0 {
		header("Content-Type", `text/plain; charset="UTF-8"`)
		b.WriteString("\r\n")
		b.WriteString(env.Body)
		return b.Bytes()
	}

	const boundary = "=_resume_site_part"
	header("Content-Type", fmt.Sprintf(`multipart/mixed; boundary=%q`, boundary))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(env.Body)
	b.WriteString("\r\n")

	for _, att := range env.Attachments {
		ct := att.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s; name=%q\r\n", ct, att.Filename)
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename)

		enc := base64.StdEncoding.EncodeToString(att.Data)
		// 76-char lines per RFC 2045.
		for len(enc) > 76 {
			b.WriteString(enc[:76])
			b.WriteString("\r\n")
			enc = enc[76:]
		}
		b.WriteString(enc)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}

// GuessContentType maps a filename extension to a MIME type, defaulting to
// generic binary.
func GuessContentType(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		if ct := mime.TypeByExtension(filename[i:]); ct != "" {
			return ct
		}
	}
	return "application/octet-stream"
}

// bareAddress strips an optional display name, returning just the address
// inside angle brackets ("Don <don@x.io>" -> "don@x.io").
func bareAddress(from string) string {
	if i := strings.Index(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return strings.TrimSpace(from[i+1 : i+j])
		}
	}
	return strings.TrimSpace(from)
}
