package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"buskpod/config"
	"buskpod/models"
)

// EmailSender delivers notifications over SMTP.
type EmailSender struct{}

// Send renders the payload template and submits the message.
func (s *EmailSender) Send(ctx context.Context, payload models.NotificationPayload) error {
	body, err := RenderBody(payload.Template, payload.Context)
	if err != nil {
		return err
	}

	cfg := config.AppConfig
	from := cfg.MailFrom
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + payload.To,
		"Subject: " + payload.Subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, auth, from, []string{payload.To}, []byte(msg)); err != nil {
		return fmt.Errorf("error sending email to %s: %w", payload.To, err)
	}
	return nil
}
