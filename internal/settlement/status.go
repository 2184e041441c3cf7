package settlement

import (
	"time"

	"scaffoldrent-backend/internal/domain"
)

// dueSoonWindowDays is how far ahead the dashboard warns about upcoming
// contract due dates.
const dueSoonWindowDays = 2

// EffectiveStatus derives a rental's current status against today's date.
// OVERDUE is a derived state, not a user action: an ACTIVE rental whose due
// date has passed reads as OVERDUE. Terminal statuses pass through.
func EffectiveStatus(r *domain.Rental, today time.Time) domain.RentalStatus {
	if r.Status.IsTerminal() {
		return r.Status
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return r.Status
	}
	if end.Before(Midnight(today)) {
		return domain.RentalStatusOverdue
	}
	return domain.RentalStatusActive
}

type AlertKind string

const (
	AlertOverdue AlertKind = "OVERDUE"
	AlertDueSoon AlertKind = "DUE_SOON"
)

// Alert is one dashboard notification about an open rental.
type Alert struct {
	Kind        AlertKind `json:"kind"`
	RentalID    string    `json:"rental_id"`
	CustomerID  string    `json:"customer_id"`
	EndDate     string    `json:"end_date"`
	DaysOverdue int       `json:"days_overdue,omitempty"`
	DueInDays   int       `json:"due_in_days,omitempty"`
}

// DeriveAlerts computes the overdue and due-soon alert list for a rental
// snapshot. Pure re-derivation on demand; callers invoke it when they need
// fresh alerts rather than maintaining reactive state.
func DeriveAlerts(rentals []domain.Rental, today time.Time) []Alert {
	alerts := make([]Alert, 0)
	midnight := Midnight(today)
	for i := range rentals {
		r := &rentals[i]
		if r.Status.IsTerminal() {
			continue
		}
		end, err := ParseDate(r.EndDate)
		if err != nil {
			continue
		}
		if end.Before(midnight) {
			alerts = append(alerts, Alert{
				Kind:        AlertOverdue,
				RentalID:    r.ID,
				CustomerID:  r.CustomerID,
				EndDate:     r.EndDate,
				DaysOverdue: DaysBetween(end, midnight),
			})
			continue
		}
		if due := DaysBetween(midnight, end); due <= dueSoonWindowDays {
			alerts = append(alerts, Alert{
				Kind:       AlertDueSoon,
				RentalID:   r.ID,
				CustomerID: r.CustomerID,
				EndDate:    r.EndDate,
				DueInDays:  due,
			})
		}
	}
	return alerts
}
