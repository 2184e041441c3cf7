package settlement

import (
	"time"

	"scaffoldrent-backend/internal/domain"
)

// ExtensionRequest asks for a rental's end date to be pushed out. Extension
// never touches inventory; the items stay rented.
type ExtensionRequest struct {
	Lines             []Line
	StartDate         time.Time
	EndDate           time.Time // current contract due date
	NewEndDate        time.Time
	CurrentTotalCents int64
	Today             time.Time
}

// ExtensionResult carries the recomputed contract cost. AdditionalCents is
// the incremental charge the customer owes on top of what was already billed.
type ExtensionResult struct {
	NewDays         int                 `json:"new_days"`
	NewTotalCents   int64               `json:"new_total_cents"`
	AdditionalCents int64               `json:"additional_cents"`
	Status          domain.RentalStatus `json:"status"`
}

// SettleExtension recomputes a rental's total for a later end date. The cost
// covers the whole period from the original start at the daily-prorated
// rate, recomputed from scratch rather than added to the old total, so crossing a
// 30-day block boundary reprices earlier days at the monthly rate.
// Shortening is rejected; that path goes through SettleReturn.
func SettleExtension(req ExtensionRequest) (*ExtensionResult, error) {
	if !req.NewEndDate.After(req.StartDate) {
		return nil, validationErrorf("", "new end date %s must be after start date %s",
			FormatDate(req.NewEndDate), FormatDate(req.StartDate))
	}
	if !req.NewEndDate.After(req.EndDate) {
		return nil, validationErrorf("", "new end date %s must be after current end date %s; use a return to shorten",
			FormatDate(req.NewEndDate), FormatDate(req.EndDate))
	}

	newDays := DaysBetween(req.StartDate, req.NewEndDate)
	newTotal := LinesCost(req.Lines, newDays)

	status := domain.RentalStatusActive
	if req.NewEndDate.Before(Midnight(req.Today)) {
		status = domain.RentalStatusOverdue
	}

	return &ExtensionResult{
		NewDays:         newDays,
		NewTotalCents:   newTotal,
		AdditionalCents: newTotal - req.CurrentTotalCents,
		Status:          status,
	}, nil
}
