package service

import (
	"context"
	"fmt"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/settlement"
)

type purchaseService struct {
	purchaseRepo  repository.PurchaseRepository
	inventoryRepo repository.InventoryRepository
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, inventoryRepo repository.InventoryRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo, inventoryRepo: inventoryRepo}
}

// CreatePurchase records a procurement transaction and adds the purchased
// units to the item's fleet. When the purchase is for a brand-new asset type,
// newItem describes it and the purchase quantity seeds its stock.
func (s *purchaseService) CreatePurchase(ctx context.Context, purchase *domain.Purchase, newItem *domain.InventoryItem) (*domain.Purchase, error) {
	if purchase.Quantity <= 0 {
		return nil, &settlement.ValidationError{Reason: "purchase quantity must be positive"}
	}
	if purchase.PaymentStatus == "" {
		purchase.PaymentStatus = domain.PaymentStatusPending
	}

	if purchase.ItemID == "" {
		if newItem == nil {
			return nil, &settlement.ValidationError{Reason: "purchase needs an item id or a new item definition"}
		}
		newItem.TotalQuantity = purchase.Quantity
		newItem.AvailableQuantity = purchase.Quantity
		if err := s.inventoryRepo.Create(ctx, newItem); err != nil {
			return nil, err
		}
		purchase.ItemID = newItem.ID
	} else {
		item, err := s.inventoryRepo.GetByID(ctx, purchase.ItemID)
		if err != nil {
			return nil, fmt.Errorf("inventory item %s: %w", purchase.ItemID, err)
		}
		item.TotalQuantity += purchase.Quantity
		item.AvailableQuantity += purchase.Quantity
		if err := s.inventoryRepo.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	logger.Info("Purchase recorded", "purchase_id", purchase.ID, "item_id", purchase.ItemID,
		"quantity", purchase.Quantity, "price_cents", purchase.PurchasePriceCents)
	return purchase, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return s.purchaseRepo.List(ctx)
}

// DeletePurchase reverses the stock increase the purchase caused. Refused
// when the purchased units are no longer on the shelf, since reversing would
// drive availableQuantity negative.
func (s *purchaseService) DeletePurchase(ctx context.Context, id string) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	item, err := s.inventoryRepo.GetByID(ctx, purchase.ItemID)
	if err != nil {
		return fmt.Errorf("inventory item %s: %w", purchase.ItemID, err)
	}
	if item.AvailableQuantity < purchase.Quantity {
		return &settlement.ValidationError{
			ItemID: item.ID,
			Reason: fmt.Sprintf("cannot reverse purchase of %d units, only %d available",
				purchase.Quantity, item.AvailableQuantity),
		}
	}

	item.TotalQuantity -= purchase.Quantity
	item.AvailableQuantity -= purchase.Quantity
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return err
	}
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Purchase deleted, stock increase reversed", "purchase_id", id,
		"item_id", item.ID, "quantity", purchase.Quantity)
	return nil
}

func (s *purchaseService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	purchase.PaymentStatus = status
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}
