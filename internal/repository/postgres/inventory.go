package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, name, category, total_quantity, available_quantity, damaged_quantity, missing_quantity, daily_price_cents, monthly_price_cents, last_maintenance, created_on, updated_on`

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	item.CreatedOn = now
	item.UpdatedOn = now
	query := `INSERT INTO inventory_items (` + inventoryColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category,
		item.TotalQuantity, item.AvailableQuantity, item.DamagedQuantity, item.MissingQuantity,
		item.DailyPriceCents, item.MonthlyPriceCents, item.LastMaintenance,
		item.CreatedOn, item.UpdatedOn)
	return err
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	item := &domain.InventoryItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Category,
		&item.TotalQuantity, &item.AvailableQuantity, &item.DamagedQuantity, &item.MissingQuantity,
		&item.DailyPriceCents, &item.MonthlyPriceCents, &item.LastMaintenance,
		&item.CreatedOn, &item.UpdatedOn)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category,
			&item.TotalQuantity, &item.AvailableQuantity, &item.DamagedQuantity, &item.MissingQuantity,
			&item.DailyPriceCents, &item.MonthlyPriceCents, &item.LastMaintenance,
			&item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	item.UpdatedOn = time.Now()
	query := `UPDATE inventory_items
	          SET name=$1, category=$2, total_quantity=$3, available_quantity=$4,
	              damaged_quantity=$5, missing_quantity=$6, daily_price_cents=$7,
	              monthly_price_cents=$8, last_maintenance=$9, updated_on=$10
	          WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category,
		item.TotalQuantity, item.AvailableQuantity, item.DamagedQuantity, item.MissingQuantity,
		item.DailyPriceCents, item.MonthlyPriceCents, item.LastMaintenance,
		item.UpdatedOn, item.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
