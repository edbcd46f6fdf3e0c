package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	intconfig "tours/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the SMTP mailer when SMTP_HOST is configured.
func New(cfg intconfig.SMTPConfig) Mailer {
	if cfg.Enabled() {
		return SMTPMailer{Config: cfg}
	}
	return LogMailer{}
}

type SMTPMailer struct {
	Config intconfig.SMTPConfig
	// send defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (m SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	var auth smtp.Auth
	if m.Config.User != "" {
		auth = smtp.PlainAuth("", m.Config.User, m.Config.Password, m.Config.Host)
	}
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	addr := net.JoinHostPort(m.Config.Host, m.Config.Port)
	return send(addr, auth, m.Config.From, []string{to}, buildMIME(m.Config.From, to, msg))
}

// headerSafe drops line breaks so visitor input cannot add headers.
var headerSafe = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func buildMIME(from, to string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerSafe.Replace(from) + "\r\n")
	b.WriteString("To: " + headerSafe.Replace(to) + "\r\n")
	b.WriteString("Subject: " + headerSafe.Replace(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// LogMailer records messages instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail not configured, message logged")
	return nil
}
