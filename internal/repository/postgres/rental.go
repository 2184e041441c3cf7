package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// Rental lines and return snapshots are small ordered sets scoped to one
// contract; they live as JSONB columns rather than join tables.
const rentalColumns = `id, customer_id, items, start_date, end_date, status, payment_status, total_cost_cents, late_fee_cents, delivery_address, deposit_cents, delivery_fee_cents, deposit_status, refunded_cents, return_snapshot, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now

	items, err := json.Marshal(rt.Items)
	if err != nil {
		return fmt.Errorf("marshal rental items: %w", err)
	}
	snapshot, err := marshalSnapshot(rt.ReturnSnapshot)
	if err != nil {
		return err
	}

	query := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.db.ExecContext(ctx, query,
		rt.ID, rt.CustomerID, items, rt.StartDate, rt.EndDate, rt.Status, rt.PaymentStatus,
		rt.TotalCostCents, rt.LateFeeCents, rt.DeliveryAddress, rt.DepositCents, rt.DeliveryFeeCents,
		(*string)(rt.DepositStatus), rt.RefundedCents, snapshot, rt.CreatedOn, rt.UpdatedOn)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY created_on DESC`
	return r.queryRentals(ctx, query)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY created_on DESC`
	return r.queryRentals(ctx, query, status)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.queryRentals(ctx, query, customerID)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	rt.UpdatedOn = time.Now()

	items, err := json.Marshal(rt.Items)
	if err != nil {
		return fmt.Errorf("marshal rental items: %w", err)
	}
	snapshot, err := marshalSnapshot(rt.ReturnSnapshot)
	if err != nil {
		return err
	}

	query := `UPDATE rentals
	          SET customer_id=$1, items=$2, start_date=$3, end_date=$4, status=$5, payment_status=$6,
	              total_cost_cents=$7, late_fee_cents=$8, delivery_address=$9, deposit_cents=$10,
	              delivery_fee_cents=$11, deposit_status=$12, refunded_cents=$13, return_snapshot=$14,
	              updated_on=$15
	          WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query,
		rt.CustomerID, items, rt.StartDate, rt.EndDate, rt.Status, rt.PaymentStatus,
		rt.TotalCostCents, rt.LateFeeCents, rt.DeliveryAddress, rt.DepositCents, rt.DeliveryFeeCents,
		(*string)(rt.DepositStatus), rt.RefundedCents, snapshot, rt.UpdatedOn, rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var items []byte
	var snapshot []byte
	var depositStatus sql.NullString

	err := row.Scan(
		&rt.ID, &rt.CustomerID, &items, &rt.StartDate, &rt.EndDate, &rt.Status, &rt.PaymentStatus,
		&rt.TotalCostCents, &rt.LateFeeCents, &rt.DeliveryAddress, &rt.DepositCents, &rt.DeliveryFeeCents,
		&depositStatus, &rt.RefundedCents, &snapshot, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &rt.Items); err != nil {
		return nil, fmt.Errorf("unmarshal rental items: %w", err)
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &rt.ReturnSnapshot); err != nil {
			return nil, fmt.Errorf("unmarshal return snapshot: %w", err)
		}
	}
	if depositStatus.Valid {
		status := domain.DepositStatus(depositStatus.String)
		rt.DepositStatus = &status
	}
	return rt, nil
}

func marshalSnapshot(snapshot []domain.ItemCondition) ([]byte, error) {
	if snapshot == nil {
		return nil, nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal return snapshot: %w", err)
	}
	return data, nil
}
