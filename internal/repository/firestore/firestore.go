// Package firestore persists records to Cloud Firestore, the document
// database the dashboard's Firestore-backed deployments use. Collections map
// one-to-one onto entities; every record is read and written whole.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"scaffoldrent-backend/internal/repository"
)

const (
	collectionInventory = "inventory"
	collectionCustomers = "customers"
	collectionRentals   = "rentals"
	collectionPurchases = "purchases"
	collectionUsers     = "users"
)

// NewClient initializes the firebase app and returns its firestore client.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}
	return client, nil
}

// NewStore wires every firestore repository over one client.
func NewStore(client *firestore.Client) *repository.Store {
	return &repository.Store{
		InventoryRepository: NewInventoryRepository(client),
		CustomerRepository:  NewCustomerRepository(client),
		RentalRepository:    NewRentalRepository(client),
		PurchaseRepository:  NewPurchaseRepository(client),
		UserRepository:      NewUserRepository(client),
	}
}

func mapNotFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}
