package service

import (
	"context"
	"fmt"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/settlement"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, rentalRepo: rentalRepo}
}

func (s *customerService) AddCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return &settlement.ValidationError{Reason: "customer name is required"}
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	return s.customerRepo.Update(ctx, customer)
}

// DeleteCustomer removes a client record, refused while the customer still
// has open rentals.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	rentals, err := s.rentalRepo.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	open := 0
	for i := range rentals {
		if !rentals[i].Status.IsTerminal() {
			open++
		}
	}
	if open > 0 {
		return &settlement.ValidationError{
			Reason: fmt.Sprintf("customer has %d open rental(s)", open),
		}
	}
	return s.customerRepo.Delete(ctx, id)
}
