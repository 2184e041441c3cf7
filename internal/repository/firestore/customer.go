package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/repository"
)

type customerRepository struct {
	client *firestore.Client
}

func NewCustomerRepository(client *firestore.Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) col() *firestore.CollectionRef {
	return r.client.Collection(collectionCustomers)
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.CustomerStatusActive
	}
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.col().Doc(c.ID).Create(ctx, c)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	c := &domain.Customer{}
	if err := doc.DataTo(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	iter := r.col().OrderBy("Name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var customers []domain.Customer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var c domain.Customer
		if err := doc.DataTo(&c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedOn = time.Now()
	if _, err := r.col().Doc(c.ID).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(c.ID).Set(ctx, c)
	return err
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
