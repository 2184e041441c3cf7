package settlement

import (
	"math"
	"time"

	"scaffoldrent-backend/internal/domain"
)

// DefaultLateFeeMultiplier applies when the operator does not override
// the per-return multiplier.
const DefaultLateFeeMultiplier = 1.5

// Condition is the per-item good/damaged/missing split of returned units.
type Condition struct {
	Good    int
	Damaged int
	Missing int
}

func (c Condition) total() int {
	return c.Good + c.Damaged + c.Missing
}

// ReturnRequest carries everything needed to settle a physical return:
// the contract window, the priced lines, the actual return date, the
// operator-adjustable late fee multiplier, per-item condition splits, and
// the deposit disposition inputs.
type ReturnRequest struct {
	Lines             []Line
	StartDate         time.Time
	EndDate           time.Time // contract due date
	ActualReturnDate  time.Time
	LateFeeMultiplier float64 // >= 1; 0 means use the default
	Conditions        map[string]Condition
	DepositCents      int64
	RefundCents       int64 // operator-decided portion of the deposit to return
}

// InventoryDelta is the signed adjustment to apply to one item's counters.
// Missing units leave total stock permanently; they never touch
// availableQuantity, which already excluded them while rented.
type InventoryDelta struct {
	ItemID    string `json:"item_id"`
	Available int    `json:"available"` // += good
	Damaged   int    `json:"damaged"`   // += damaged
	Total     int    `json:"total"`     // -= missing (carried as a negative delta)
	Missing   int    `json:"missing"`   // lifetime loss counter increment
}

// ReturnResult is the complete outcome of a return settlement, handed back
// to the host to persist as one unit of work.
type ReturnResult struct {
	BaseDays      int                    `json:"base_days"`
	OverdueDays   int                    `json:"overdue_days"`
	BaseCostCents int64                  `json:"base_cost_cents"`
	LateFeeCents  int64                  `json:"late_fee_cents"`
	TotalCents    int64                  `json:"total_cents"`
	Deltas        []InventoryDelta       `json:"deltas"`
	Snapshot      []domain.ItemCondition `json:"snapshot"`
	DepositStatus *domain.DepositStatus  `json:"deposit_status,omitempty"`
	RefundedCents *int64                 `json:"refunded_cents,omitempty"`
}

// SettleReturn finalizes a rental upon physical return. Validation runs
// first and a failure aborts before any result is produced; callers can rely
// on a returned error implying zero state to apply.
//
// The base cost window is start → min(actual return, contract end), floored
// at one day: an immediate or early return still bills at least one day.
// Overdue days past the contract end bill at the daily-prorated rate times
// the late fee multiplier.
func SettleReturn(req ReturnRequest) (*ReturnResult, error) {
	multiplier := req.LateFeeMultiplier
	if multiplier == 0 {
		multiplier = DefaultLateFeeMultiplier
	}
	if multiplier < 1 {
		return nil, validationErrorf("", "late fee multiplier must be at least 1, got %v", multiplier)
	}

	// Every rented unit must be accounted for before anything mutates.
	for _, line := range req.Lines {
		cond, ok := req.Conditions[line.ItemID]
		if !ok {
			return nil, validationErrorf(line.ItemID, "missing condition counts")
		}
		if cond.Good < 0 || cond.Damaged < 0 || cond.Missing < 0 {
			return nil, validationErrorf(line.ItemID, "condition counts must not be negative")
		}
		if cond.total() != line.Quantity {
			return nil, validationErrorf(line.ItemID,
				"returned %d units (good %d, damaged %d, missing %d) but %d were rented",
				cond.total(), cond.Good, cond.Damaged, cond.Missing, line.Quantity)
		}
	}
	for itemID := range req.Conditions {
		if !hasLine(req.Lines, itemID) {
			return nil, validationErrorf(itemID, "item is not on the rental")
		}
	}

	if req.DepositCents > 0 {
		if req.RefundCents < 0 || req.RefundCents > req.DepositCents {
			return nil, validationErrorf("", "refund %d outside deposit bounds 0..%d",
				req.RefundCents, req.DepositCents)
		}
	}

	effectiveEnd := minTime(req.ActualReturnDate, req.EndDate)
	baseDays := DaysBetween(req.StartDate, effectiveEnd)
	if baseDays < 1 {
		baseDays = 1
	}
	baseCost := LinesCost(req.Lines, baseDays)

	var overdueDays int
	var lateFee int64
	if req.ActualReturnDate.After(req.EndDate) {
		overdueDays = DaysBetween(req.EndDate, req.ActualReturnDate)
		lateFee = int64(math.Round(float64(LinesCost(req.Lines, overdueDays)) * multiplier))
	}

	res := &ReturnResult{
		BaseDays:      baseDays,
		OverdueDays:   overdueDays,
		BaseCostCents: baseCost,
		LateFeeCents:  lateFee,
		TotalCents:    baseCost + lateFee,
	}

	for _, line := range req.Lines {
		cond := req.Conditions[line.ItemID]
		res.Deltas = append(res.Deltas, InventoryDelta{
			ItemID:    line.ItemID,
			Available: cond.Good,
			Damaged:   cond.Damaged,
			Total:     -cond.Missing,
			Missing:   cond.Missing,
		})
		res.Snapshot = append(res.Snapshot, domain.ItemCondition{
			ItemID:  line.ItemID,
			Good:    cond.Good,
			Damaged: cond.Damaged,
			Missing: cond.Missing,
		})
	}

	if req.DepositCents > 0 {
		status := depositDisposition(req.DepositCents, req.RefundCents)
		refunded := req.RefundCents
		res.DepositStatus = &status
		res.RefundedCents = &refunded
	}

	return res, nil
}

func depositDisposition(deposit, refund int64) domain.DepositStatus {
	switch refund {
	case deposit:
		return domain.DepositStatusRefunded
	case 0:
		return domain.DepositStatusWithheld
	default:
		return domain.DepositStatusPartial
	}
}

func hasLine(lines []Line, itemID string) bool {
	for _, line := range lines {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}
