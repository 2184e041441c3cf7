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

type purchaseRepository struct {
	client *firestore.Client
}

func NewPurchaseRepository(client *firestore.Client) repository.PurchaseRepository {
	return &purchaseRepository{client: client}
}

func (r *purchaseRepository) col() *firestore.CollectionRef {
	return r.client.Collection(collectionPurchases)
}

func (r *purchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedOn = time.Now()
	_, err := r.col().Doc(p.ID).Create(ctx, p)
	return err
}

func (r *purchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p := &domain.Purchase{}
	if err := doc.DataTo(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *purchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	iter := r.col().OrderBy("PurchaseDate", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var purchases []domain.Purchase
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p domain.Purchase
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (r *purchaseRepository) Update(ctx context.Context, p *domain.Purchase) error {
	if _, err := r.col().Doc(p.ID).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(p.ID).Set(ctx, p)
	return err
}

func (r *purchaseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
