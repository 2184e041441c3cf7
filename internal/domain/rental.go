package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
	RentalStatusReturned  RentalStatus = "RETURNED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// IsTerminal reports whether the status permits no further transitions.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusReturned || s == RentalStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

type DepositStatus string

const (
	DepositStatusRefunded DepositStatus = "REFUNDED"
	DepositStatusWithheld DepositStatus = "WITHHELD"
	DepositStatusPartial  DepositStatus = "PARTIAL"
)

// RentalLine is one distinct item on a contract. A rental carries at most one
// line per item id; duplicate entries are aggregated before storage.
type RentalLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ItemCondition records the good/damaged/missing split of the units a
// customer handed back for one item. Part of the immutable return snapshot.
type ItemCondition struct {
	ItemID  string `json:"item_id"`
	Good    int    `json:"good"`
	Damaged int    `json:"damaged"`
	Missing int    `json:"missing"`
}

// Rental is one contract. EndDate holds the contract due date while the
// rental is open and is overwritten with the actual return date on return.
// TotalCostCents always reflects the cost of the currently recorded date
// range; it is recalculated whenever EndDate changes, never incremented.
type Rental struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	Items            []RentalLine    `json:"items"`
	StartDate        string          `json:"start_date"` // yyyy-mm-dd
	EndDate          string          `json:"end_date"`   // yyyy-mm-dd
	Status           RentalStatus    `json:"status"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	TotalCostCents   int64           `json:"total_cost_cents"`
	LateFeeCents     *int64          `json:"late_fee_cents,omitempty"` // set only when a return was late
	DeliveryAddress  string          `json:"delivery_address"`
	DepositCents     int64           `json:"deposit_cents,omitempty"`
	DeliveryFeeCents int64           `json:"delivery_fee_cents,omitempty"`
	DepositStatus    *DepositStatus  `json:"deposit_status,omitempty"` // set once deposit disposition decided
	RefundedCents    *int64          `json:"refunded_cents,omitempty"`
	ReturnSnapshot   []ItemCondition `json:"return_snapshot,omitempty"` // immutable audit record
	CreatedOn        time.Time       `json:"created_on"`
	UpdatedOn        time.Time       `json:"updated_on"`
}

// QuantityOf returns the rented quantity for an item, summed across lines.
func (r *Rental) QuantityOf(itemID string) int {
	total := 0
	for _, line := range r.Items {
		if line.ItemID == itemID {
			total += line.Quantity
		}
	}
	return total
}
