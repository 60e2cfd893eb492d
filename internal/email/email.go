package email

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/bookdesk/booking-api/internal/config"
)

// Sender delivers notification mail. Delivery failures are logged, never
// surfaced to the request that triggered them.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return &noopSender{}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email")
		return err
	}
	return nil
}

type noopSender struct{}

func (n *noopSender) Send(to, subject, body string) error {
	log.Debug().Str("to", to).Str("subject", subject).Msg("email delivery disabled, dropping message")
	return nil
}
