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

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) col() *firestore.CollectionRef {
	return r.client.Collection(collectionUsers)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	_, err := r.col().Doc(u.ID).Create(ctx, u)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	u := &domain.User{}
	if err := doc.DataTo(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := r.col().Where("Email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u := &domain.User{}
	if err := doc.DataTo(u); err != nil {
		return nil, err
	}
	return u, nil
}
