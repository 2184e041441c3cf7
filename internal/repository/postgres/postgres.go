package postgres

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"scaffoldrent-backend/internal/repository"
)

// NewStore wires every postgres repository over one database handle.
func NewStore(db *sql.DB) *repository.Store {
	return &repository.Store{
		InventoryRepository: NewInventoryRepository(db),
		CustomerRepository:  NewCustomerRepository(db),
		RentalRepository:    NewRentalRepository(db),
		PurchaseRepository:  NewPurchaseRepository(db),
		UserRepository:      NewUserRepository(db),
	}
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
