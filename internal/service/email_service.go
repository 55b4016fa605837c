package service

import (
	"crypto/tls"
	"fmt"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/pkg/logger"
	"net/smtp"

	"go.uber.org/zap"
)

// EmailService sends transactional mail over SMTP with STARTTLS. When no
// SMTP host is configured (local development) sends are logged instead.
type EmailService struct {
	Cfg *config.SMTPConfig
}

func NewEmailService(cfg *config.SMTPConfig) *EmailService {
	return &EmailService{Cfg: cfg}
}

func (s *EmailService) SendPasswordResetOTP(to, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(`<html><body>
<p>Use the following code to reset your password:</p>
<h2>%s</h2>
<p>The code expires in 10 minutes. If you did not request a reset, ignore this email.</p>
</body></html>`, code)
	return s.send(to, subject, body)
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	if s.Cfg.Host == "" {
		logger.Log.Info("SMTP not configured, skipping mail send",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.Cfg.Host, s.Cfg.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.Cfg.From, to, subject, htmlBody))

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.Cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.Cfg.Username != "" {
		auth := smtp.PlainAuth("", s.Cfg.Username, s.Cfg.Password, s.Cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.Cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
