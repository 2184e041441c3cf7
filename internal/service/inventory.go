package service

import (
	"context"
	"fmt"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/settlement"
)

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	rentalRepo    repository.RentalRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, rentalRepo repository.RentalRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, rentalRepo: rentalRepo}
}

func (s *inventoryService) AddItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.Name == "" {
		return &settlement.ValidationError{Reason: "item name is required"}
	}
	if item.TotalQuantity < 0 {
		return &settlement.ValidationError{ItemID: item.ID, Reason: "total quantity must not be negative"}
	}
	// A freshly added item has its whole fleet on the shelf.
	if item.AvailableQuantity == 0 && item.DamagedQuantity == 0 {
		item.AvailableQuantity = item.TotalQuantity
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return err
	}
	logger.Info("Inventory item added", "item_id", item.ID, "name", item.Name, "total", item.TotalQuantity)
	return nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.List(ctx)
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	return s.inventoryRepo.Update(ctx, item)
}

// DeleteItem removes an asset type, refused while any open rental still
// references it.
func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	open, err := s.openRentalCount(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return &settlement.ValidationError{
			ItemID: id,
			Reason: fmt.Sprintf("item is referenced by %d open rental(s)", open),
		}
	}
	return s.inventoryRepo.Delete(ctx, id)
}

// RepairDamaged moves repaired units from the damaged pool back to available.
func (s *inventoryService) RepairDamaged(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 || quantity > item.DamagedQuantity {
		return nil, &settlement.ValidationError{
			ItemID: id,
			Reason: fmt.Sprintf("cannot repair %d units, %d damaged", quantity, item.DamagedQuantity),
		}
	}
	item.DamagedQuantity -= quantity
	item.AvailableQuantity += quantity
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Info("Damaged units repaired", "item_id", id, "quantity", quantity)
	return item, nil
}

// DiscardDamaged writes damaged units off: they leave both the damaged pool
// and total stock.
func (s *inventoryService) DiscardDamaged(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 || quantity > item.DamagedQuantity {
		return nil, &settlement.ValidationError{
			ItemID: id,
			Reason: fmt.Sprintf("cannot discard %d units, %d damaged", quantity, item.DamagedQuantity),
		}
	}
	item.DamagedQuantity -= quantity
	item.TotalQuantity -= quantity
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Info("Damaged units discarded", "item_id", id, "quantity", quantity)
	return item, nil
}

func (s *inventoryService) openRentalCount(ctx context.Context, itemID string) (int, error) {
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range rentals {
		if rentals[i].Status.IsTerminal() {
			continue
		}
		if rentals[i].QuantityOf(itemID) > 0 {
			count++
		}
	}
	return count, nil
}
