package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/repository/postgres"
)

var rentalCols = []string{
	"id", "customer_id", "items", "start_date", "end_date", "status", "payment_status",
	"total_cost_cents", "late_fee_cents", "delivery_address", "deposit_cents",
	"delivery_fee_cents", "deposit_status", "refunded_cents", "return_snapshot",
	"created_on", "updated_on",
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		CustomerID:    "c1",
		Items:         []domain.RentalLine{{ItemID: "i1", Quantity: 10}},
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-31",
		Status:        domain.RentalStatusActive,
		PaymentStatus: domain.PaymentStatusPending,
		DepositCents:  500000,
	}

	mock.ExpectExec("INSERT INTO rentals").
		WithArgs(sqlmock.AnyArg(), "c1", []byte(`[{"item_id":"i1","quantity":10}]`),
			"2024-01-01", "2024-01-31", domain.RentalStatusActive, domain.PaymentStatusPending,
			int64(0), nil, "", int64(500000), int64(0), nil, nil, []byte(nil),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, rental))
	assert.NotEmpty(t, rental.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("OpenRental", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs("r1").
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(
				"r1", "c1", []byte(`[{"item_id":"i1","quantity":10}]`),
				"2024-01-01", "2024-01-31", "ACTIVE", "PENDING",
				int64(30000), nil, "12 Site Rd", int64(500000), int64(2500),
				nil, nil, nil, now, now))

		rental, err := repo.GetByID(ctx, "r1")
		assert.NoError(t, err)
		assert.Equal(t, "c1", rental.CustomerID)
		assert.Len(t, rental.Items, 1)
		assert.Equal(t, 10, rental.Items[0].Quantity)
		assert.Nil(t, rental.LateFeeCents)
		assert.Nil(t, rental.DepositStatus)
		assert.Nil(t, rental.ReturnSnapshot)
	})

	t.Run("SettledRental", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs("r2").
			WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(
				"r2", "c1", []byte(`[{"item_id":"i1","quantity":10}]`),
				"2024-01-01", "2024-02-03", "RETURNED", "PAID",
				int64(34500), int64(4500), "", int64(500000), int64(0),
				"PARTIAL", int64(250000),
				[]byte(`[{"item_id":"i1","good":9,"damaged":1,"missing":0}]`),
				now, now))

		rental, err := repo.GetByID(ctx, "r2")
		assert.NoError(t, err)
		assert.Equal(t, int64(4500), *rental.LateFeeCents)
		assert.Equal(t, domain.DepositStatusPartial, *rental.DepositStatus)
		assert.Equal(t, int64(250000), *rental.RefundedCents)
		assert.Len(t, rental.ReturnSnapshot, 1)
		assert.Equal(t, 1, rental.ReturnSnapshot[0].Damaged)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(rentalCols))

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRentalRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE status").
		WithArgs(domain.RentalStatusOverdue).
		WillReturnRows(sqlmock.NewRows(rentalCols).AddRow(
			"r1", "c1", []byte(`[]`), "2024-01-01", "2024-01-10", "OVERDUE", "PENDING",
			int64(900), nil, "", int64(0), int64(0), nil, nil, nil, now, now))

	rentals, err := repo.ListByStatus(ctx, domain.RentalStatusOverdue)
	assert.NoError(t, err)
	assert.Len(t, rentals, 1)
	assert.Equal(t, domain.RentalStatusOverdue, rentals[0].Status)
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("MissingRowIsNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.Rental{ID: "ghost", Items: []domain.RentalLine{}})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
