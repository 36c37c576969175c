package services

import (
	"fmt"

	"syntra/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailSender sends transactional HTML email
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// EmailService implements EmailSender over SMTP
type EmailService struct {
	cfg config.SMTPConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Send sends an HTML email
func (s *EmailService) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	return d.DialAndSend(m)
}

// OTPEmailBody renders the email-verification OTP message
func OTPEmailBody(code string) string {
	return fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
		<h2 style="color: #3A4118;">Welcome to Syntra!</h2>
		<p>You're almost there. Use the code below to verify your email address:</p>
		<div style="background: #f4f4f4; padding: 15px; text-align: center; border-radius: 8px;">
			<h1 style="margin: 0; letter-spacing: 10px; font-family: monospace; color: #3A4118;">%s</h1>
		</div>
		<p style="margin-top: 20px; font-size: 0.9rem; color: #666;">This code will expire in 10 minutes. If you didn't request this, please ignore this email.</p>
	</div>`, code)
}

// DecisionEmailBody renders the verification-decision notification
func DecisionEmailBody(name, status, note string) string {
	if status == "APPROVED" {
		return fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
		<h2 style="color: #3A4118;">You're verified, %s! 🎉</h2>
		<p>Your Syntra ID check passed. You can now create listings, open a brand page, and post housing.</p>
	</div>`, name)
	}

	return fmt.Sprintf(`
	<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
		<h2 style="color: #3A4118;">Verification update for %s</h2>
		<p>Unfortunately your verification request was not approved.</p>
		<p style="background: #f4f4f4; padding: 15px; border-radius: 8px;">%s</p>
		<p>You can submit a new request with corrected details at any time.</p>
	</div>`, name, note)
}
