package email

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Message is one outbound email.
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single message. Implemented by SMTPSender in production
// and by fakes in tests.
type Sender interface {
	Send(msg Message) error
}

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{config: config, logger: logger}
}

// Send delivers one message. When SMTP credentials are not configured the
// message is logged and dropped, which keeps development setups working
// without a mail server.
func (s *SMTPSender) Send(msg Message) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	dialer := gomail.NewDialer(s.config.Host, s.config.Port, s.config.Username, s.config.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Retry policy for outbound mail: maxAttempts tries total with a fixed pause
// between attempts.
const (
	maxAttempts = 3
	retryPause  = time.Second
)

// Service sends templated portal notifications with bounded retry.
type Service struct {
	sender Sender
	logger zerolog.Logger
	pause  time.Duration
}

// NewService creates an email Service on top of a Sender.
func NewService(sender Sender, logger zerolog.Logger) *Service {
	return &Service{
		sender: sender,
		logger: logger,
		pause:  retryPause,
	}
}

// SendWithRetry attempts delivery up to maxAttempts times, pausing between
// attempts. Only after exhausting every attempt is the failure surfaced.
func (s *Service) SendWithRetry(msg Message) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = s.sender.Send(msg)
		if lastErr == nil {
			return nil
		}
		s.logger.Warn().
			Err(lastErr).
			Str("to", msg.To).
			Int("attempt", attempt).
			Msg("Email delivery attempt failed")
		if attempt < maxAttempts {
			time.Sleep(s.pause)
		}
	}
	return fmt.Errorf("email delivery failed after %d attempts: %w", maxAttempts, lastErr)
}

// SendApplicationConfirmation emails the student that their application was
// received.
func (s *Service) SendApplicationConfirmation(data ConfirmationData) error {
	return s.SendWithRetry(ApplicationConfirmationTemplate(data))
}

// SendApplicationNotification alerts the professor about a new application.
// The message carries a signed resume-download link and a tracked click URL
// instead of an attachment.
func (s *Service) SendApplicationNotification(data NotificationData) error {
	return s.SendWithRetry(ApplicationNotificationTemplate(data))
}

// SendStatusUpdate emails the student about an application status change.
func (s *Service) SendStatusUpdate(data StatusUpdateData) error {
	return s.SendWithRetry(StatusUpdateTemplate(data))
}
