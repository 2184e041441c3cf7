package service

import (
	"context"
	"fmt"
	"time"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/settlement"
)

type rentalService struct {
	rentalRepo        repository.RentalRepository
	inventoryRepo     repository.InventoryRepository
	customerRepo      repository.CustomerRepository
	lateFeeMultiplier float64
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	inventoryRepo repository.InventoryRepository,
	customerRepo repository.CustomerRepository,
	lateFeeMultiplier float64,
) RentalService {
	if lateFeeMultiplier == 0 {
		lateFeeMultiplier = settlement.DefaultLateFeeMultiplier
	}
	return &rentalService{
		rentalRepo:        rentalRepo,
		inventoryRepo:     inventoryRepo,
		customerRepo:      customerRepo,
		lateFeeMultiplier: lateFeeMultiplier,
	}
}

// CreateRental opens a contract: aggregates duplicate lines, checks stock,
// prices the contract window in daily-prorated mode, and moves the rented
// units out of availableQuantity.
func (s *rentalService) CreateRental(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	if _, err := s.customerRepo.GetByID(ctx, rental.CustomerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", rental.CustomerID, err)
	}
	if len(rental.Items) == 0 {
		return nil, &settlement.ValidationError{Reason: "rental has no items"}
	}

	rental.Items = settlement.AggregateLines(rental.Items)

	start, err := settlement.ParseDate(rental.StartDate)
	if err != nil {
		return nil, &settlement.ValidationError{Reason: err.Error()}
	}

	// An unset end date bills zero until it is known.
	days := 0
	if rental.EndDate != "" {
		end, err := settlement.ParseDate(rental.EndDate)
		if err != nil {
			return nil, &settlement.ValidationError{Reason: err.Error()}
		}
		days = settlement.DaysBetween(start, end)
	}

	lines, items, err := s.resolveLines(ctx, rental)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		item := items[line.ItemID]
		if item.AvailableQuantity < line.Quantity {
			return nil, &settlement.ValidationError{
				ItemID: line.ItemID,
				Reason: fmt.Sprintf("requested %d units of %s but only %d available",
					line.Quantity, item.Name, item.AvailableQuantity),
			}
		}
	}

	rental.TotalCostCents = settlement.LinesCost(lines, days)
	rental.Status = domain.RentalStatusActive
	if rental.PaymentStatus == "" {
		rental.PaymentStatus = domain.PaymentStatusPending
	}

	// All checks passed; apply the stock deduction, then persist the rental.
	for _, line := range rental.Items {
		item := items[line.ItemID]
		item.AvailableQuantity -= line.Quantity
		if err := s.inventoryRepo.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("update inventory %s: %w", line.ItemID, err)
		}
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}

	logger.Info("Rental created", "rental_id", rental.ID, "customer_id", rental.CustomerID,
		"days", days, "total_cost_cents", rental.TotalCostCents)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

// ListRentals returns all rentals with status re-derived against today, so
// contracts past their due date read OVERDUE without waiting for the nightly
// job.
func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	for i := range rentals {
		rentals[i].Status = settlement.EffectiveStatus(&rentals[i], today)
	}
	return rentals, nil
}

// ExtendRental pushes the due date out and recomputes the full contract cost
// from the original start. Inventory is untouched; the items stay rented.
func (s *rentalService) ExtendRental(ctx context.Context, id, newEndDate string) (*domain.Rental, *settlement.ExtensionResult, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status.IsTerminal() {
		return nil, nil, &settlement.PreconditionError{RentalID: rental.ID, Status: rental.Status}
	}

	start, err := settlement.ParseDate(rental.StartDate)
	if err != nil {
		return nil, nil, &settlement.ValidationError{Reason: err.Error()}
	}
	// A rental opened without a due date extends from its start; setting the
	// first end date goes through the same repricing path.
	end := start
	if rental.EndDate != "" {
		end, err = settlement.ParseDate(rental.EndDate)
		if err != nil {
			return nil, nil, &settlement.ValidationError{Reason: err.Error()}
		}
	}
	newEnd, err := settlement.ParseDate(newEndDate)
	if err != nil {
		return nil, nil, &settlement.ValidationError{Reason: err.Error()}
	}

	lines, _, err := s.resolveLines(ctx, rental)
	if err != nil {
		return nil, nil, err
	}

	result, err := settlement.SettleExtension(settlement.ExtensionRequest{
		Lines:             lines,
		StartDate:         start,
		EndDate:           end,
		NewEndDate:        newEnd,
		CurrentTotalCents: rental.TotalCostCents,
		Today:             time.Now(),
	})
	if err != nil {
		return nil, nil, err
	}

	rental.EndDate = newEndDate
	rental.TotalCostCents = result.NewTotalCents
	rental.Status = result.Status
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, nil, err
	}

	logger.Info("Rental extended", "rental_id", rental.ID, "new_end_date", newEndDate,
		"new_total_cents", result.NewTotalCents, "additional_cents", result.AdditionalCents)
	return rental, result, nil
}

// ReturnRental settles a physical return. The engine validates every input
// before producing a delta set; nothing is written when validation fails.
func (s *rentalService) ReturnRental(ctx context.Context, id string, params ReturnParams) (*domain.Rental, *settlement.ReturnResult, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status.IsTerminal() {
		return nil, nil, &settlement.PreconditionError{RentalID: rental.ID, Status: rental.Status}
	}

	start, err := settlement.ParseDate(rental.StartDate)
	if err != nil {
		return nil, nil, &settlement.ValidationError{Reason: err.Error()}
	}
	end, err := settlement.ParseDate(rental.EndDate)
	if err != nil {
		return nil, nil, &settlement.ValidationError{Reason: err.Error()}
	}
	actual, err := settlement.ParseDate(params.ActualReturnDate)
	if err != nil {
		return nil, nil, &settlement.ValidationError{Reason: err.Error()}
	}

	lines, items, err := s.resolveLines(ctx, rental)
	if err != nil {
		return nil, nil, err
	}

	conditions := make(map[string]settlement.Condition, len(params.Conditions))
	for _, c := range params.Conditions {
		conditions[c.ItemID] = settlement.Condition{Good: c.Good, Damaged: c.Damaged, Missing: c.Missing}
	}

	multiplier := params.LateFeeMultiplier
	if multiplier == 0 {
		multiplier = s.lateFeeMultiplier
	}

	result, err := settlement.SettleReturn(settlement.ReturnRequest{
		Lines:             lines,
		StartDate:         start,
		EndDate:           end,
		ActualReturnDate:  actual,
		LateFeeMultiplier: multiplier,
		Conditions:        conditions,
		DepositCents:      rental.DepositCents,
		RefundCents:       params.RefundCents,
	})
	if err != nil {
		return nil, nil, err
	}

	// Apply the full delta set as one unit of work: inventory first, then
	// the rental's terminal state.
	for _, delta := range result.Deltas {
		item := items[delta.ItemID]
		item.AvailableQuantity += delta.Available
		item.DamagedQuantity += delta.Damaged
		item.TotalQuantity += delta.Total
		item.MissingQuantity += delta.Missing
		if err := s.inventoryRepo.Update(ctx, item); err != nil {
			return nil, nil, fmt.Errorf("update inventory %s: %w", delta.ItemID, err)
		}
	}

	rental.Status = domain.RentalStatusReturned
	rental.EndDate = params.ActualReturnDate
	rental.TotalCostCents = result.TotalCents
	if result.LateFeeCents > 0 {
		fee := result.LateFeeCents
		rental.LateFeeCents = &fee
	}
	rental.ReturnSnapshot = result.Snapshot
	rental.DepositStatus = result.DepositStatus
	rental.RefundedCents = result.RefundedCents
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, nil, err
	}

	logger.Info("Rental returned", "rental_id", rental.ID, "base_cost_cents", result.BaseCostCents,
		"late_fee_cents", result.LateFeeCents, "total_cents", result.TotalCents,
		"overdue_days", result.OverdueDays)
	return rental, result, nil
}

// CancelRental closes an open contract without billing changes and puts the
// rented units back into available stock.
func (s *rentalService) CancelRental(ctx context.Context, id string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.Status.IsTerminal() {
		return nil, &settlement.PreconditionError{RentalID: rental.ID, Status: rental.Status}
	}

	if err := s.restoreStock(ctx, rental); err != nil {
		return nil, err
	}

	rental.Status = domain.RentalStatusCancelled
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "rental_id", rental.ID)
	return rental, nil
}

// DeleteRental removes a contract record. Deleting an open rental reverses
// its stock deduction so the inventory partition stays consistent; returned
// and cancelled rentals already settled their stock.
func (s *rentalService) DeleteRental(ctx context.Context, id string) error {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !rental.Status.IsTerminal() {
		logger.Warn("Deleting open rental, reversing stock deduction", "rental_id", rental.ID, "status", rental.Status)
		if err := s.restoreStock(ctx, rental); err != nil {
			return err
		}
	}

	return s.rentalRepo.Delete(ctx, id)
}

func (s *rentalService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rental.PaymentStatus = status
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// resolveLines looks up each rented item and builds priced settlement lines
// from its current rate card.
func (s *rentalService) resolveLines(ctx context.Context, rental *domain.Rental) ([]settlement.Line, map[string]*domain.InventoryItem, error) {
	lines := make([]settlement.Line, 0, len(rental.Items))
	items := make(map[string]*domain.InventoryItem, len(rental.Items))
	for _, line := range rental.Items {
		item, err := s.inventoryRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, nil, fmt.Errorf("inventory item %s: %w", line.ItemID, err)
		}
		items[line.ItemID] = item
		lines = append(lines, settlement.Line{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Rate:     settlement.RateOf(item),
		})
	}
	return lines, items, nil
}

func (s *rentalService) restoreStock(ctx context.Context, rental *domain.Rental) error {
	for _, line := range rental.Items {
		item, err := s.inventoryRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return fmt.Errorf("inventory item %s: %w", line.ItemID, err)
		}
		item.AvailableQuantity += line.Quantity
		if err := s.inventoryRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("update inventory %s: %w", line.ItemID, err)
		}
	}
	return nil
}
