// Package mailer is the notification gateway: it renders and dispatches the
// password-reset email. The auth service hands over data only; all
// presentation lives here.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// ResetData is everything the reset template needs.
type ResetData struct {
	FullName     string
	ResetURL     string
	ValidMinutes int
}

// Sender dispatches a password-reset message. Implementations must respect
// ctx so a stuck transport cannot hang the caller.
type Sender interface {
	SendPasswordReset(ctx context.Context, to string, data ResetData) error
}

// SMTPConfig carries the transport credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail over an authenticated SMTP connection.
type SMTP struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTP{client: client, from: cfg.From}, nil
}

func (s *SMTP) SendPasswordReset(ctx context.Context, to string, data ResetData) error {
	body, err := RenderReset(data)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Reset Your Password")
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// RenderReset renders the reset email body.
func RenderReset(data ResetData) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render reset template: %w", err)
	}
	return buf.String(), nil
}
