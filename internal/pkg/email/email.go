package email

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

// EmailService handles sending transactional emails to institutions
type EmailService interface {
	SendRegistrationEmail(to, orgName string) error
	SendApprovalEmail(to, orgName string) error
	SendPasswordResetEmail(to, orgName, resetToken string) error
}

// SMTPConfig contains configuration for the SMTP email service
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

type smtpEmailService struct {
	config SMTPConfig
}

// NewSMTPEmailService creates a new email service using SMTP
func NewSMTPEmailService(config SMTPConfig) EmailService {
	return &smtpEmailService{config: config}
}

func (s *smtpEmailService) SendRegistrationEmail(to, orgName string) error {
	subject := "Registration Received"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s</h2>
			<p>Your registration has been received and is pending review.</p>
			<p>You will be notified by email once your account is approved.</p>
		</body>
		</html>
	`, orgName)

	return s.sendEmail(to, subject, body)
}

func (s *smtpEmailService) SendApprovalEmail(to, orgName string) error {
	subject := "Account Approved"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Good news, %s</h2>
			<p>Your institution account has been approved. You can now sign in and manage your students.</p>
		</body>
		</html>
	`, orgName)

	return s.sendEmail(to, subject, body)
}

func (s *smtpEmailService) SendPasswordResetEmail(to, orgName, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, resetToken)

	subject := "Password Reset Request"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset</h2>
			<p>Hello %s,</p>
			<p>A password reset was requested for your account. Click the link below to choose a new password:</p>
			<p><a href="%s">%s</a></p>
			<p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>
		</body>
		</html>
	`, orgName, resetURL, resetURL)

	return s.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP. Without credentials configured the
// message is logged instead of sent, which keeps local development working.
func (s *smtpEmailService) sendEmail(to, subject, body string) error {
	if s.config.Username == "" || s.config.Password == "" {
		logger.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP credentials not configured, logging email instead of sending")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body))

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, msg); err != nil {
		logger.Error().Err(err).Str("to", to).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

// GenerateResetToken creates a random token for the password reset flow
func GenerateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
