// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders HTML
// bodies from templates embedded into the binary.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/donorops/backend/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Client wraps the Resend client together with the sender identity
// from config.
type Client struct {
	client *resend.Client
	logger *zerolog.Logger

	fromName    string
	fromAddress string
}

// NewClient creates an email Client using the API key and sender
// identity from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:      resend.NewClient(cfg.Email.ResendAPIKey),
		logger:      logger,
		fromName:    cfg.Email.FromName,
		fromAddress: cfg.Email.FromAddress,
	}
}

// SendEmail sends an email with HTML rendered from an embedded
// template. data keys must match what the template expects.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("templates/%s.html", templateName)

	tmpl, err := template.ParseFS(templateFS, tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromAddress),
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	_, err = c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info().
		Str("to", to).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
