package jobs

import (
	"context"
	"time"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/settlement"
)

// MarkOverdueRentals flips ACTIVE rentals past their due date to OVERDUE and
// flags their unpaid balances as overdue too.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		rentals, err := jr.store.RentalRepository.ListByStatus(ctx, domain.RentalStatusActive)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		now := time.Now()
		count := 0
		for i := range rentals {
			rental := &rentals[i]
			if settlement.EffectiveStatus(rental, now) != domain.RentalStatusOverdue {
				continue
			}

			rental.Status = domain.RentalStatusOverdue
			if rental.PaymentStatus != domain.PaymentStatusPaid {
				rental.PaymentStatus = domain.PaymentStatusOverdue
			}
			rental.UpdatedOn = now

			if err := jr.store.RentalRepository.Update(ctx, rental); err != nil {
				logger.Error("Failed to mark rental as overdue",
					"rental_id", rental.ID,
					"error", err)
				continue
			}

			logger.Debug("Marked rental as overdue",
				"rental_id", rental.ID,
				"customer_id", rental.CustomerID,
				"end_date", rental.EndDate)
			count++
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// SendOverdueReminders emails every customer holding an overdue rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		rentals, err := jr.store.RentalRepository.ListByStatus(ctx, domain.RentalStatusOverdue)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		midnight := settlement.Midnight(time.Now())
		sent := 0
		for i := range rentals {
			rental := &rentals[i]

			customer, err := jr.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue reminder",
					"rental_id", rental.ID,
					"customer_id", rental.CustomerID,
					"error", err)
				continue
			}
			if customer.Email == "" {
				logger.Warn("Customer has no email, skipping overdue reminder",
					"rental_id", rental.ID,
					"customer_id", customer.ID)
				continue
			}

			daysOverdue := 0
			if end, err := settlement.ParseDate(rental.EndDate); err == nil {
				daysOverdue = settlement.DaysBetween(end, midnight)
			}

			if err := jr.services.Email.SendOverdueReminder(ctx, customer.Email, customer.Name, rental.ID, rental.EndDate, daysOverdue); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", rental.ID,
					"customer_email", customer.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue reminders sent", "count", sent)
	})
}
