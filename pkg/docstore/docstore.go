// Package docstore connects to the document store holding the catalog
// (products and suppliers).
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/stockpile/pkg/metrics"
)

// Collection names.
const (
	Products  = "products"
	Suppliers = "suppliers"
	Logs      = "logs"
)

// Store bundles the client and the application database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri, verifies the connection and selects database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50).
		SetMonitor(metrics.CommandMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}

	return &Store{Client: client, DB: client.Database(database)}, nil
}

// Ping checks the connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// Indexes lists the secondary indexes the catalog queries rely on.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		Products: {
			{Keys: bson.D{{Key: "supplierId", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "quantity", Value: 1}}},
		},
		Suppliers: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the catalog indexes. Existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range Indexes() {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("docstore: indexes on %s: %w", col, err)
		}
	}
	return nil
}
