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

type inventoryRepository struct {
	client *firestore.Client
}

func NewInventoryRepository(client *firestore.Client) repository.InventoryRepository {
	return &inventoryRepository{client: client}
}

func (r *inventoryRepository) col() *firestore.CollectionRef {
	return r.client.Collection(collectionInventory)
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	item.CreatedOn = now
	item.UpdatedOn = now
	_, err := r.col().Doc(item.ID).Create(ctx, item)
	return err
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	item := &domain.InventoryItem{}
	if err := doc.DataTo(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	iter := r.col().OrderBy("Name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var items []domain.InventoryItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var item domain.InventoryItem
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	item.UpdatedOn = time.Now()
	// Set without Create fails silently into an upsert; verify existence first
	// so a stale id surfaces as ErrNotFound like the other backend.
	if _, err := r.col().Doc(item.ID).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(item.ID).Set(ctx, item)
	return err
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
