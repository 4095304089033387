package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendWelcome(ctx context.Context, toEmail, fullName string) error
}

// NoopEmailService используется, когда отправка почты отключена
type NoopEmailService struct{}

func (s *NoopEmailService) SendWelcome(ctx context.Context, toEmail, fullName string) error {
	log.Printf("[EmailService] noop send welcome to=%s", toEmail)
	return nil
}

// ResendEmailService отправляет письма через REST API Resend
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

// SendWelcome отправляет приветственное письмо после регистрации
func (s *ResendEmailService) SendWelcome(ctx context.Context, toEmail, fullName string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to the exam portal",
		Text:    fmt.Sprintf("Hi %s, your exam portal account is ready. You can now sign in and take your exams.", fullName),
		Html:    fmt.Sprintf("<p>Hi <strong>%s</strong>,</p><p>Your exam portal account is ready. You can now sign in and take your exams.</p>", fullName),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
