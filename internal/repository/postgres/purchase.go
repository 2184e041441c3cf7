package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
)

type purchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

const purchaseColumns = `id, item_id, supplier, quantity, purchase_price_cents, purchase_date, payment_status, created_on`

func (r *purchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedOn = time.Now()
	query := `INSERT INTO purchases (` + purchaseColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ItemID, p.Supplier, p.Quantity, p.PurchasePriceCents, p.PurchaseDate, p.PaymentStatus, p.CreatedOn)
	return err
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	p := &domain.Purchase{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ItemID, &p.Supplier, &p.Quantity, &p.PurchasePriceCents, &p.PurchaseDate, &p.PaymentStatus, &p.CreatedOn)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return p, nil
}

func (r *purchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY purchase_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.ItemID, &p.Supplier, &p.Quantity, &p.PurchasePriceCents, &p.PurchaseDate, &p.PaymentStatus, &p.CreatedOn); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *purchaseRepository) Update(ctx context.Context, p *domain.Purchase) error {
	query := `UPDATE purchases SET supplier=$1, quantity=$2, purchase_price_cents=$3, purchase_date=$4, payment_status=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		p.Supplier, p.Quantity, p.PurchasePriceCents, p.PurchaseDate, p.PaymentStatus, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *purchaseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
