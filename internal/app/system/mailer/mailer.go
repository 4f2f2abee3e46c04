// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message with both text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an email. The notification dispatcher depends on this
// interface so tests can capture sends without an SMTP server.
type Sender interface {
	Send(e Email) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port int
	from string
	log  *zap.Logger
}

// NewSMTP builds an SMTPMailer. No auth; the relay is expected to be an
// internal host that allowlists this service.
func NewSMTP(host string, port int, from string, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, log: log}
}

func (m *SMTPMailer) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var msg strings.Builder
	boundary := "rosterhub-alt-boundary"
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", e.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", e.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.TextBody)
	if e.HTMLBody != "" {
		fmt.Fprintf(&msg, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
	}
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	if err := smtp.SendMail(addr, nil, m.from, []string{e.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	m.log.Debug("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// NopMailer discards mail. Used when no SMTP host is configured so manager
// notifications still persist without email side effects.
type NopMailer struct{}

func (NopMailer) Send(Email) error { return nil }
