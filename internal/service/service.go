package service

import (
	"context"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/settlement"
)

type InventoryService interface {
	AddItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error
	RepairDamaged(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error)
	DiscardDamaged(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error)
}

type CustomerService interface {
	AddCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

// ReturnParams carries the operator's inputs for a physical return.
type ReturnParams struct {
	ActualReturnDate  string
	LateFeeMultiplier float64 // 0 means use the configured default
	Conditions        []domain.ItemCondition
	RefundCents       int64
}

type RentalService interface {
	CreateRental(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	GetRental(ctx context.Context, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	ExtendRental(ctx context.Context, id, newEndDate string) (*domain.Rental, *settlement.ExtensionResult, error)
	ReturnRental(ctx context.Context, id string, params ReturnParams) (*domain.Rental, *settlement.ReturnResult, error)
	CancelRental(ctx context.Context, id string) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id string) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Rental, error)
}

type PurchaseService interface {
	CreatePurchase(ctx context.Context, purchase *domain.Purchase, newItem *domain.InventoryItem) (*domain.Purchase, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	DeletePurchase(ctx context.Context, id string) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Purchase, error)
}

// DashboardStats is the aggregate snapshot the dashboard landing page shows.
type DashboardStats struct {
	TotalUnits           int   `json:"total_units"`
	AvailableUnits       int   `json:"available_units"`
	RentedUnits          int   `json:"rented_units"`
	DamagedUnits         int   `json:"damaged_units"`
	MissingUnits         int   `json:"missing_units"`
	ActiveRentals        int   `json:"active_rentals"`
	OverdueRentals       int   `json:"overdue_rentals"`
	ActiveCustomers      int   `json:"active_customers"`
	RevenueCents         int64 `json:"revenue_cents"`
	PendingPaymentCents  int64 `json:"pending_payment_cents"`
	PendingPurchaseCents int64 `json:"pending_purchase_cents"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetAlerts(ctx context.Context) ([]settlement.Alert, error)
}

type InsightService interface {
	GenerateInsights(ctx context.Context) (string, error)
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, email, customerName, rentalID, endDate string, daysOverdue int) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error)
}
