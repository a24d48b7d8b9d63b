package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/efficience-dental/agenda-api/internal/model"
)

// Service sends patient-facing mail for the practice.
type Service interface {
	SendReminder(ctx context.Context, apt *model.Appointment) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Practice string
}

type smtpService struct {
	dialer *gomail.Dialer
	cfg    Config
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (s *smtpService) SendReminder(ctx context.Context, apt *model.Appointment) error {
	if apt.Email == "" {
		return fmt.Errorf("appointment %s has no contact email", apt.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", apt.Email)
	m.SetHeader("Subject", fmt.Sprintf("Rappel de rendez-vous — %s", s.cfg.Practice))
	m.SetBody("text/plain", fmt.Sprintf(
		"Bonjour %s,\n\nNous vous rappelons votre rendez-vous (%s) le %s à %s.\n\n%s",
		apt.PatientName, apt.Category, apt.Date, apt.Time, s.cfg.Practice,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
