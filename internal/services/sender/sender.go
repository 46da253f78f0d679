// Package services отправляет письма пользователям по событиям из очереди.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bsanthoshbsr/elearning-platform/internal/lib/sl"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/smtp"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// SenderService составляет и отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendRegistrationConfirmation отправляет письмо о успешной регистрации.
func (s *SenderService) SendRegistrationConfirmation(body []byte) error {
	event, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Welcome to the e-learning platform"
	bodyText := fmt.Sprintf("Dear %s,\n\nThank you for signing up with us!\n\n"+
		"Your account %s has been created.\n\nSincerely,\ne-learning-platform",
		event.Name, event.Username)

	return s.sendEmail([]string{event.Email}, subject, bodyText)
}

// SendPasswordResetConfirmation отправляет письмо о смене пароля.
func (s *SenderService) SendPasswordResetConfirmation(body []byte) error {
	event, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Password reset successful"
	bodyText := fmt.Sprintf("Dear %s,\n\nWe received a request to reset your password.\n"+
		"Your password reset is successful.\n\nSincerely,\ne-learning-platform",
		event.Name)

	return s.sendEmail([]string{event.Email}, subject, bodyText)
}

// SendEnrollmentConfirmation отправляет письмо о записи на курс.
func (s *SenderService) SendEnrollmentConfirmation(body []byte) error {
	event, err := s.decode(body)
	if err != nil {
		return err
	}

	subject := "Enrollment confirmation"
	bodyText := fmt.Sprintf("Dear %s,\n\nYou have been enrolled in the course \"%s\".\n\n"+
		"Sincerely,\ne-learning-platform",
		event.Name, event.CourseTitle)

	return s.sendEmail([]string{event.Email}, subject, bodyText)
}

func (s *SenderService) decode(body []byte) (*models.NotificationEvent, error) {
	var event models.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return nil, fmt.Errorf("error unmarshalling message: %w", err)
	}
	return &event, nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP session", sl.Err(err))
		return err
	}

	s.log.Info("email sent", slog.String("subject", subject), slog.Any("to", to))
	return nil
}
