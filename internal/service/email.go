package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"scaffoldrent-backend/internal/logger"
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

func (s *emailService) SendOverdueReminder(ctx context.Context, email, customerName, rentalID, endDate string, daysOverdue int) error {
	subject := fmt.Sprintf("Overdue rental reminder: contract due %s", endDate)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour scaffolding rental (contract %s) was due back on %s and is now %d day(s) overdue. Late fees accrue daily until the equipment is returned.\n\nPlease contact us to arrange the return.\n\nBest regards,\nThe Rentals Team",
		customerName, rentalID, endDate, daysOverdue)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(customerName, email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", "SendOverdueReminder", "to", email, "rental_id", rentalID)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "SendOverdueReminder", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "SendOverdueReminder", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "SendOverdueReminder", nil)
	return nil
}
