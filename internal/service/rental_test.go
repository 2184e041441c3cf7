package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/service"
	"scaffoldrent-backend/internal/settlement"
)

func newRentalService(rentalRepo *MockRentalRepo, inventoryRepo *MockInventoryRepo, customerRepo *MockCustomerRepo) service.RentalService {
	return service.NewRentalService(rentalRepo, inventoryRepo, customerRepo, 0)
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("DeductsStockAndPricesContract", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "c1").Return(&domain.Customer{ID: "c1", Name: "Acme"}, nil).Once()
		item := &domain.InventoryItem{ID: "i1", Name: "Frame", TotalQuantity: 10, AvailableQuantity: 10, DailyPriceCents: 100, MonthlyPriceCents: 2500}
		inventoryRepo.On("GetByID", ctx, "i1").Return(item, nil).Once()
		inventoryRepo.On("Update", ctx, mock.MatchedBy(func(it *domain.InventoryItem) bool {
			return it.ID == "i1" && it.AvailableQuantity == 8
		})).Return(nil).Once()
		rentalRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusActive &&
				r.PaymentStatus == domain.PaymentStatusPending &&
				r.TotalCostCents == 2000 // 2 units * 100/day * 10 days
		})).Return(nil).Once()

		created, err := svc.CreateRental(ctx, &domain.Rental{
			CustomerID: "c1",
			Items:      []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-11",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(2000), created.TotalCostCents)

		rentalRepo.AssertExpectations(t)
		inventoryRepo.AssertExpectations(t)
		customerRepo.AssertExpectations(t)
	})

	t.Run("AggregatesDuplicateLines", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "c1").Return(&domain.Customer{ID: "c1"}, nil).Once()
		item := &domain.InventoryItem{ID: "i1", AvailableQuantity: 10, DailyPriceCents: 50}
		inventoryRepo.On("GetByID", ctx, "i1").Return(item, nil).Once()
		inventoryRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		rentalRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return len(r.Items) == 1 && r.Items[0].Quantity == 5
		})).Return(nil).Once()

		_, err := svc.CreateRental(ctx, &domain.Rental{
			CustomerID: "c1",
			Items: []domain.RentalLine{
				{ItemID: "i1", Quantity: 2},
				{ItemID: "i1", Quantity: 3},
			},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-03",
		})
		assert.NoError(t, err)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("InsufficientStockRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "c1").Return(&domain.Customer{ID: "c1"}, nil).Once()
		item := &domain.InventoryItem{ID: "i1", Name: "Frame", AvailableQuantity: 1, DailyPriceCents: 100}
		inventoryRepo.On("GetByID", ctx, "i1").Return(item, nil).Once()

		_, err := svc.CreateRental(ctx, &domain.Rental{
			CustomerID: "c1",
			Items:      []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-11",
		})
		var verr *settlement.ValidationError
		assert.ErrorAs(t, err, &verr)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnknownCustomerRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.CreateRental(ctx, &domain.Rental{
			CustomerID: "ghost",
			Items:      []domain.RentalLine{{ItemID: "i1", Quantity: 1}},
			StartDate:  "2024-01-01",
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("EmptyLinesRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		customerRepo.On("GetByID", ctx, "c1").Return(&domain.Customer{ID: "c1"}, nil).Once()

		_, err := svc.CreateRental(ctx, &domain.Rental{CustomerID: "c1", StartDate: "2024-01-01"})
		var verr *settlement.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestRentalService_ReturnRental(t *testing.T) {
	ctx := context.Background()

	t.Run("LateReturnAppliesFeeAndDeltas", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rental := &domain.Rental{
			ID:           "r1",
			CustomerID:   "c1",
			Items:        []domain.RentalLine{{ItemID: "i1", Quantity: 10}},
			StartDate:    "2024-01-01",
			EndDate:      "2024-01-10",
			Status:       domain.RentalStatusOverdue,
			DepositCents: 500000,
		}
		item := &domain.InventoryItem{ID: "i1", TotalQuantity: 20, AvailableQuantity: 10, DailyPriceCents: 10}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(item, nil).Once()
		inventoryRepo.On("Update", ctx, mock.MatchedBy(func(it *domain.InventoryItem) bool {
			// 7 good back on the shelf, 2 damaged, 1 missing leaves total
			return it.AvailableQuantity == 17 && it.DamagedQuantity == 2 &&
				it.TotalQuantity == 19 && it.MissingQuantity == 1
		})).Return(nil).Once()
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusReturned &&
				r.EndDate == "2024-01-13" &&
				r.LateFeeCents != nil && *r.LateFeeCents == 450 &&
				r.DepositStatus != nil && *r.DepositStatus == domain.DepositStatusRefunded &&
				len(r.ReturnSnapshot) == 1
		})).Return(nil).Once()

		updated, result, err := svc.ReturnRental(ctx, "r1", service.ReturnParams{
			ActualReturnDate: "2024-01-13",
			Conditions:       []domain.ItemCondition{{ItemID: "i1", Good: 7, Damaged: 2, Missing: 1}},
			RefundCents:      500000,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(900), result.BaseCostCents)
		assert.Equal(t, int64(450), result.LateFeeCents)
		assert.Equal(t, int64(1350), result.TotalCents)
		assert.Equal(t, int64(1350), updated.TotalCostCents)

		rentalRepo.AssertExpectations(t)
		inventoryRepo.AssertExpectations(t)
	})

	t.Run("DoubleReturnRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "r1").Return(&domain.Rental{
			ID: "r1", Status: domain.RentalStatusReturned,
		}, nil).Once()

		_, _, err := svc.ReturnRental(ctx, "r1", service.ReturnParams{ActualReturnDate: "2024-01-13"})
		var perr *settlement.PreconditionError
		assert.ErrorAs(t, err, &perr)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ValidationFailureWritesNothing", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rental := &domain.Rental{
			ID:        "r1",
			Items:     []domain.RentalLine{{ItemID: "i1", Quantity: 10}},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-10",
			Status:    domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{ID: "i1", DailyPriceCents: 10}, nil).Once()

		_, _, err := svc.ReturnRental(ctx, "r1", service.ReturnParams{
			ActualReturnDate: "2024-01-10",
			// 11 units accounted for but only 10 rented
			Conditions: []domain.ItemCondition{{ItemID: "i1", Good: 8, Damaged: 2, Missing: 1}},
		})
		var verr *settlement.ValidationError
		assert.ErrorAs(t, err, &verr)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRentalService_ExtendRental(t *testing.T) {
	ctx := context.Background()
	today := time.Now()

	t.Run("RecomputesTotalFromStart", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		start := settlement.FormatDate(today.AddDate(0, 0, -10))
		end := settlement.FormatDate(today.AddDate(0, 0, 5))
		newEnd := settlement.FormatDate(today.AddDate(0, 0, 20))

		rental := &domain.Rental{
			ID:             "r1",
			Items:          []domain.RentalLine{{ItemID: "i1", Quantity: 1}},
			StartDate:      start,
			EndDate:        end,
			Status:         domain.RentalStatusActive,
			TotalCostCents: 1500,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{
			ID: "i1", DailyPriceCents: 100, MonthlyPriceCents: 2500,
		}, nil).Once()
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.EndDate == newEnd && r.TotalCostCents == 2500 && r.Status == domain.RentalStatusActive
		})).Return(nil).Once()

		updated, result, err := svc.ExtendRental(ctx, "r1", newEnd)
		assert.NoError(t, err)
		assert.Equal(t, 30, result.NewDays)
		assert.Equal(t, int64(2500), result.NewTotalCents)
		assert.Equal(t, int64(1000), result.AdditionalCents)
		assert.Equal(t, newEnd, updated.EndDate)

		rentalRepo.AssertExpectations(t)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("OpenEndedRentalGetsFirstDueDate", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		start := settlement.FormatDate(today.AddDate(0, 0, -10))
		newEnd := settlement.FormatDate(today.AddDate(0, 0, 5))

		rental := &domain.Rental{
			ID:             "r1",
			Items:          []domain.RentalLine{{ItemID: "i1", Quantity: 1}},
			StartDate:      start,
			EndDate:        "",
			Status:         domain.RentalStatusActive,
			TotalCostCents: 0,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{
			ID: "i1", DailyPriceCents: 100, MonthlyPriceCents: 2500,
		}, nil).Once()
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.EndDate == newEnd && r.TotalCostCents == 1500
		})).Return(nil).Once()

		updated, result, err := svc.ExtendRental(ctx, "r1", newEnd)
		assert.NoError(t, err)
		assert.Equal(t, 15, result.NewDays)
		assert.Equal(t, int64(1500), result.NewTotalCents)
		assert.Equal(t, int64(1500), result.AdditionalCents)
		assert.Equal(t, newEnd, updated.EndDate)

		rentalRepo.AssertExpectations(t)
	})

	t.Run("ShorteningRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rental := &domain.Rental{
			ID:        "r1",
			Items:     []domain.RentalLine{{ItemID: "i1", Quantity: 1}},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-20",
			Status:    domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{ID: "i1", DailyPriceCents: 100}, nil).Once()

		_, _, err := svc.ExtendRental(ctx, "r1", "2024-01-15")
		var verr *settlement.ValidationError
		assert.ErrorAs(t, err, &verr)
		rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("TerminalRentalRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "r1").Return(&domain.Rental{
			ID: "r1", Status: domain.RentalStatusCancelled,
		}, nil).Once()

		_, _, err := svc.ExtendRental(ctx, "r1", "2030-01-01")
		var perr *settlement.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestRentalService_CancelRental(t *testing.T) {
	ctx := context.Background()

	t.Run("RestoresStock", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rental := &domain.Rental{
			ID:     "r1",
			Items:  []domain.RentalLine{{ItemID: "i1", Quantity: 3}},
			Status: domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{ID: "i1", AvailableQuantity: 7}, nil).Once()
		inventoryRepo.On("Update", ctx, mock.MatchedBy(func(it *domain.InventoryItem) bool {
			return it.AvailableQuantity == 10
		})).Return(nil).Once()
		rentalRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Status == domain.RentalStatusCancelled
		})).Return(nil).Once()

		cancelled, err := svc.CancelRental(ctx, "r1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, cancelled.Status)
		inventoryRepo.AssertExpectations(t)
	})

	t.Run("TerminalRentalRejected", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "r1").Return(&domain.Rental{
			ID: "r1", Status: domain.RentalStatusReturned,
		}, nil).Once()

		_, err := svc.CancelRental(ctx, "r1")
		var perr *settlement.PreconditionError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestRentalService_DeleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("OpenRentalReversesStock", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rental := &domain.Rental{
			ID:     "r1",
			Items:  []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
			Status: domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", ctx, "r1").Return(rental, nil).Once()
		inventoryRepo.On("GetByID", ctx, "i1").Return(&domain.InventoryItem{ID: "i1", AvailableQuantity: 3}, nil).Once()
		inventoryRepo.On("Update", ctx, mock.MatchedBy(func(it *domain.InventoryItem) bool {
			return it.AvailableQuantity == 5
		})).Return(nil).Once()
		rentalRepo.On("Delete", ctx, "r1").Return(nil).Once()

		assert.NoError(t, svc.DeleteRental(ctx, "r1"))
		inventoryRepo.AssertExpectations(t)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("ReturnedRentalLeavesStockAlone", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		inventoryRepo := new(MockInventoryRepo)
		customerRepo := new(MockCustomerRepo)
		svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

		rentalRepo.On("GetByID", ctx, "r1").Return(&domain.Rental{
			ID:     "r1",
			Items:  []domain.RentalLine{{ItemID: "i1", Quantity: 2}},
			Status: domain.RentalStatusReturned,
		}, nil).Once()
		rentalRepo.On("Delete", ctx, "r1").Return(nil).Once()

		assert.NoError(t, svc.DeleteRental(ctx, "r1"))
		inventoryRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		inventoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRentalService_ListRentals_DerivesOverdue(t *testing.T) {
	ctx := context.Background()
	rentalRepo := new(MockRentalRepo)
	inventoryRepo := new(MockInventoryRepo)
	customerRepo := new(MockCustomerRepo)
	svc := newRentalService(rentalRepo, inventoryRepo, customerRepo)

	pastDue := settlement.FormatDate(time.Now().AddDate(0, 0, -3))
	rentalRepo.On("List", ctx).Return([]domain.Rental{
		{ID: "r1", Status: domain.RentalStatusActive, EndDate: pastDue},
		{ID: "r2", Status: domain.RentalStatusReturned, EndDate: pastDue},
	}, nil).Once()

	rentals, err := svc.ListRentals(ctx)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusOverdue, rentals[0].Status)
	assert.Equal(t, domain.RentalStatusReturned, rentals[1].Status)
}
