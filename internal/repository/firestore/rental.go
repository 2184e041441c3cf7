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

type rentalRepository struct {
	client *firestore.Client
}

func NewRentalRepository(client *firestore.Client) repository.RentalRepository {
	return &rentalRepository{client: client}
}

func (r *rentalRepository) col() *firestore.CollectionRef {
	return r.client.Collection(collectionRentals)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	_, err := r.col().Doc(rt.ID).Create(ctx, rt)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	rt := &domain.Rental{}
	if err := doc.DataTo(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.collect(r.col().OrderBy("CreatedOn", firestore.Desc).Documents(ctx))
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.collect(r.col().Where("Status", "==", string(status)).Documents(ctx))
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Rental, error) {
	return r.collect(r.col().Where("CustomerID", "==", customerID).Documents(ctx))
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	rt.UpdatedOn = time.Now()
	if _, err := r.col().Doc(rt.ID).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(rt.ID).Set(ctx, rt)
	return err
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *rentalRepository) collect(iter *firestore.DocumentIterator) ([]domain.Rental, error) {
	defer iter.Stop()

	var rentals []domain.Rental
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var rt domain.Rental
		if err := doc.DataTo(&rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, nil
}
