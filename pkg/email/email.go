package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

const appName = "GymDesk"

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Message is a rendered email ready to be sent
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Transport delivers a rendered message
type Transport interface {
	Send(ctx context.Context, from string, msg Message) error
}

// EmailService renders and sends transactional emails
type EmailService struct {
	config    EmailConfig
	transport Transport
	templates *template.Template
}

// NewEmailService creates a new email service backed by SMTP
func NewEmailService(config EmailConfig) *EmailService {
	return NewEmailServiceWithTransport(config, &smtpTransport{config: config})
}

// NewEmailServiceWithTransport creates an email service with a custom transport
func NewEmailServiceWithTransport(config EmailConfig, transport Transport) *EmailService {
	tmpl := template.Must(template.New("layout").Parse(layoutTemplate))
	template.Must(tmpl.New("password_reset").Parse(passwordResetTemplate))
	template.Must(tmpl.New("welcome").Parse(welcomeTemplate))

	return &EmailService{config: config, transport: transport, templates: tmpl}
}

// IsConfigured reports whether an SMTP host is set
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != ""
}

// SendPasswordResetEmail sends a password reset link to a staff account
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		strings.TrimRight(s.config.FrontendURL, "/"),
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	body, err := s.render("password_reset", map[string]any{
		"Email":    toEmail,
		"ResetURL": resetURL,
	})
	if err != nil {
		return err
	}

	return s.transport.Send(ctx, s.config.FromEmail, Message{
		To:      toEmail,
		Subject: "Reset your password - " + appName,
		HTML:    body,
	})
}

// SendWelcomeEmail greets a newly registered member with their membership window
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName, planName string, from time.Time, to *time.Time) error {
	data := map[string]any{
		"Name":     fullName,
		"PlanName": planName,
		"From":     from.Format("02 Jan 2006"),
	}
	if to != nil {
		data["To"] = to.Format("02 Jan 2006")
	}

	body, err := s.render("welcome", data)
	if err != nil {
		return err
	}

	return s.transport.Send(ctx, s.config.FromEmail, Message{
		To:      toEmail,
		Subject: "Welcome to " + appName,
		HTML:    body,
	})
}

func (s *EmailService) render(name string, data map[string]any) (string, error) {
	data["AppName"] = appName
	data["Year"] = time.Now().Year()

	var content bytes.Buffer
	if err := s.templates.ExecuteTemplate(&content, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	data["Content"] = template.HTML(content.String())

	var page bytes.Buffer
	if err := s.templates.ExecuteTemplate(&page, "layout", data); err != nil {
		return "", fmt.Errorf("failed to render email layout: %w", err)
	}
	return page.String(), nil
}

type smtpTransport struct {
	config EmailConfig
}

func (t *smtpTransport) Send(_ context.Context, from string, msg Message) error {
	addr := fmt.Sprintf("%s:%d", t.config.SMTPHost, t.config.SMTPPort)
	auth := smtp.PlainAuth("", t.config.SMTPUsername, t.config.SMTPPassword, t.config.SMTPHost)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		t.config.FromName, from, msg.To, msg.Subject,
	)

	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(headers+msg.HTML)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.AppName}}</title></head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background-color:#f2f4f3;">
  <table role="presentation" style="width:100%;border-collapse:collapse;">
    <tr><td style="padding:32px 0;">
      <table role="presentation" style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:10px;">
        <tr><td style="background:#1f7a4d;padding:28px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;font-size:26px;">{{.AppName}}</h1>
        </td></tr>
        <tr><td style="padding:32px 28px;color:#333333;font-size:15px;line-height:1.6;">{{.Content}}</td></tr>
        <tr><td style="padding:20px;text-align:center;color:#9aa5a0;font-size:12px;border-top:1px solid #e5e9e7;">
          &copy; {{.Year}} {{.AppName}}
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const passwordResetTemplate = `<h2 style="margin-top:0;">Reset your password</h2>
<p>We received a request to reset the password for <strong>{{.Email}}</strong>.</p>
<p>The link below expires in <strong>1 hour</strong>.</p>
<p style="text-align:center;margin:28px 0;">
  <a href="{{.ResetURL}}" style="background:#1f7a4d;color:#ffffff;padding:14px 28px;border-radius:6px;text-decoration:none;">Reset password</a>
</p>
<p style="color:#777777;font-size:13px;">If you did not ask for this, ignore this email. Your password stays the same.</p>
<p style="color:#777777;font-size:13px;word-break:break-all;">{{.ResetURL}}</p>`

const welcomeTemplate = `<h2 style="margin-top:0;">Welcome, {{.Name}}!</h2>
{{if .PlanName}}<p>Your <strong>{{.PlanName}}</strong> membership starts on <strong>{{.From}}</strong>{{if .To}} and runs until <strong>{{.To}}</strong>{{end}}.</p>
{{else}}<p>Your membership starts on <strong>{{.From}}</strong>.</p>{{end}}
<p>See you on the floor.</p>`
