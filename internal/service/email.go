package service

import (
	"context"
	"fmt"
	"time"

	"schoollib-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendIssueApprovedNotification(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error {
	subject := fmt.Sprintf("Your request for \"%s\" was approved", bookTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour request for \"%s\" has been approved. The book is due back on %s.\n\nBest regards,\nThe School Library",
		name, bookTitle, dueDate.Format("2006-01-02"))
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendIssueRejectedNotification(ctx context.Context, email, name, bookTitle string) error {
	subject := fmt.Sprintf("Your request for \"%s\" was declined", bookTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour request for \"%s\" was declined by the librarian. Please contact the library desk for details.\n\nBest regards,\nThe School Library",
		name, bookTitle)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendBookReturnedNotification(ctx context.Context, email, name, bookTitle string, fine int32) error {
	subject := fmt.Sprintf("Return recorded for \"%s\"", bookTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour return of \"%s\" has been recorded.", name, bookTitle)
	if fine > 0 {
		body += fmt.Sprintf("\n\nA late fine of %d was charged for this loan.", fine)
	}
	body += "\n\nBest regards,\nThe School Library"
	return s.send(ctx, email, name, subject, body)
}
