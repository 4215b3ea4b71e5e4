package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ModelCollectionName is the collection holding trained model documents.
const ModelCollectionName = "ml_models"

// Config holds database configuration.
type Config struct {
	URI            string
	DBName         string
	CollectionName string
}

// Mongo wraps a single client connection and the collection handles the
// application uses. It is created once at startup and passed explicitly to
// every component that needs store access.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	trips  *mongo.Collection
	models *mongo.Collection
}

// Connect opens a client, verifies the connection with a ping and returns
// the wrapped handles.
func Connect(ctx context.Context, cfg Config) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(cfg.DBName)
	log.Printf("Mongo connected: db=%s collection=%s", cfg.DBName, cfg.CollectionName)

	return &Mongo{
		client: client,
		db:     db,
		trips:  db.Collection(cfg.CollectionName),
		models: db.Collection(ModelCollectionName),
	}, nil
}

// Trips returns the trips collection handle.
func (m *Mongo) Trips() *mongo.Collection {
	return m.trips
}

// Models returns the trained-model collection handle.
func (m *Mongo) Models() *mongo.Collection {
	return m.models
}

// Bucket returns a GridFS bucket on the application database.
func (m *Mongo) Bucket() (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(m.db)
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}
	return bucket, nil
}

// Ping checks that the store is still reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(pingCtx, readpref.Primary())
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
