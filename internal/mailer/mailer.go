package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/rs/zerolog"
)

// Mailer delivers transactional mail. The SMTP implementation is the
// only real one; tests substitute a fake.
type Mailer interface {
	SendOTP(to, otp string) error
}

// SMTPMailer sends mail through a plain SMTP relay with AUTH PLAIN.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
	log  zerolog.Logger
}

// NewSMTPMailer creates an SMTPMailer from config.
func NewSMTPMailer(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
		log:  log.With().Str("component", "mailer").Logger(),
	}
}

// SendOTP emails the verification passcode to a pending admin.
func (m *SMTPMailer) SendOTP(to, otp string) error {
	subject := "Verify your Email"
	body := fmt.Sprintf("Your OTP is %s", otp)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body))

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("OTP mail delivery failed")
		return fmt.Errorf("send otp mail: %w", err)
	}

	m.log.Info().Str("to", to).Msg("OTP mail sent")
	return nil
}
