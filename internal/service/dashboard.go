package service

import (
	"context"
	"time"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/settlement"
)

type dashboardService struct {
	inventoryRepo repository.InventoryRepository
	customerRepo  repository.CustomerRepository
	rentalRepo    repository.RentalRepository
	purchaseRepo  repository.PurchaseRepository
}

func NewDashboardService(
	inventoryRepo repository.InventoryRepository,
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
	purchaseRepo repository.PurchaseRepository,
) DashboardService {
	return &dashboardService{
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
		rentalRepo:    rentalRepo,
		purchaseRepo:  purchaseRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	today := time.Now()

	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		stats.TotalUnits += items[i].TotalQuantity
		stats.AvailableUnits += items[i].AvailableQuantity
		stats.DamagedUnits += items[i].DamagedQuantity
		stats.MissingUnits += items[i].MissingQuantity
	}
	// Whatever is neither on the shelf nor damaged is out on rent.
	stats.RentedUnits = stats.TotalUnits - stats.AvailableUnits - stats.DamagedUnits

	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		r := &rentals[i]
		switch settlement.EffectiveStatus(r, today) {
		case domain.RentalStatusActive:
			stats.ActiveRentals++
		case domain.RentalStatusOverdue:
			stats.OverdueRentals++
		}
		if r.Status != domain.RentalStatusCancelled {
			stats.RevenueCents += r.TotalCostCents
			if r.PaymentStatus != domain.PaymentStatusPaid {
				stats.PendingPaymentCents += r.TotalCostCents
			}
		}
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Status == domain.CustomerStatusActive {
			stats.ActiveCustomers++
		}
	}

	purchases, err := s.purchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range purchases {
		if purchases[i].PaymentStatus == domain.PaymentStatusPending {
			stats.PendingPurchaseCents += purchases[i].PurchasePriceCents
		}
	}

	return stats, nil
}

func (s *dashboardService) GetAlerts(ctx context.Context) ([]settlement.Alert, error) {
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return settlement.DeriveAlerts(rentals, time.Now()), nil
}
