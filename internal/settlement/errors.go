package settlement

import (
	"fmt"

	"scaffoldrent-backend/internal/domain"
)

// ValidationError reports caller-correctable bad input: condition counts that
// do not reconcile with the rented quantity, an extension that does not
// lengthen the contract, a refund outside the deposit bounds. No state is
// mutated when one is returned.
type ValidationError struct {
	ItemID string // offending item, when the error is item-specific
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("validation failed for item %s: %s", e.ItemID, e.Reason)
	}
	return "validation failed: " + e.Reason
}

func validationErrorf(itemID, format string, args ...any) *ValidationError {
	return &ValidationError{ItemID: itemID, Reason: fmt.Sprintf(format, args...)}
}

// PreconditionError reports an operation attempted on a rental whose status
// permits no further transitions.
type PreconditionError struct {
	RentalID string
	Status   domain.RentalStatus
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("rental %s is already %s", e.RentalID, e.Status)
}
