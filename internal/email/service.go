package email

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/medipresence/presence-api/internal/config"
	"github.com/medipresence/presence-api/internal/model"
)

// Notifier delivers out-of-band notifications for critical alerts.
type Notifier interface {
	NotifyCriticalAlert(alert *model.Alert) error
}

// Service sends alert email through SMTP.
type Service struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.AdminEmail,
	}
}

func (s *Service) NotifyCriticalAlert(alert *model.Alert) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %s", alert.Priority, alert.AlertType))
	m.SetBody("text/plain", fmt.Sprintf(
		"Alert: %s\nPriority: %s\nTime: %s\n\n%s\n",
		alert.AlertType, alert.Priority, alert.CreatedAt.Format("2006-01-02 15:04:05 UTC"), alert.Message,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	log.Info().Str("alert_type", alert.AlertType).Msg("sent alert email")
	return nil
}

// NopNotifier is used when email delivery is disabled.
type NopNotifier struct{}

func (NopNotifier) NotifyCriticalAlert(*model.Alert) error { return nil }
