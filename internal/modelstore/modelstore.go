// Package modelstore persists and restores trained fare models. A model
// travels as a bundle of regressor, ordered feature list and holdout
// metrics, either gob-encoded into a single file or as a document in the
// model collection with the regressor inline or in GridFS.
package modelstore

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/urbanmobility/analytics-backend-go/internal/database"
	"github.com/urbanmobility/analytics-backend-go/internal/ml"
	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

const gridFSFilename = "fare_regression.gob"

// Bundle is a trained model together with everything needed to serve it.
type Bundle struct {
	Model    *ml.Forest
	Features []string
	Metrics  models.Metrics
}

// SaveToFile writes the bundle to a single gob file.
func SaveToFile(path string, b *Bundle) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(b); err != nil {
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	return nil
}

// LoadFromFile reads a bundle written by SaveToFile. A missing or
// non-regular file is the "no model" state: nil bundle, nil error.
func LoadFromFile(path string) (*Bundle, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer file.Close()

	var bundle Bundle
	if err := gob.NewDecoder(file).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to decode model bundle: %w", err)
	}
	return &bundle, nil
}

// Store reads and writes model artifacts in Mongo.
type Store struct {
	collection *mongo.Collection
	bucket     *gridfs.Bucket
}

// NewStore builds a model store on the shared database handle.
func NewStore(db *database.Mongo) (*Store, error) {
	bucket, err := db.Bucket()
	if err != nil {
		return nil, err
	}
	return &Store{collection: db.Models(), bucket: bucket}, nil
}

// LoadLatest returns the most recently trained fare-regression bundle, or
// nil when no model document exists.
func (s *Store) LoadLatest(ctx context.Context) (*Bundle, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "trained_at", Value: -1}})

	var doc models.ModelDocument
	err := s.collection.FindOne(ctx, bson.M{"model_type": models.ModelTypeFareRegression}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model document: %w", err)
	}

	blob, err := s.resolve(ctx, blobRefFromDoc(doc))
	if err != nil {
		return nil, err
	}

	var forest ml.Forest
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&forest); err != nil {
		return nil, fmt.Errorf("failed to decode stored regressor: %w", err)
	}

	return &Bundle{Model: &forest, Features: doc.Features, Metrics: doc.Metrics}, nil
}

// Save serializes the regressor into GridFS, removes any prior artifact of
// the same model type and inserts a fresh document referencing the new
// file, the feature list and the metrics.
func (s *Store) Save(ctx context.Context, b *Bundle) error {
	var blob bytes.Buffer
	if err := gob.NewEncoder(&blob).Encode(b.Model); err != nil {
		return fmt.Errorf("failed to encode regressor: %w", err)
	}

	fileID, err := s.bucket.UploadFromStream(gridFSFilename, bytes.NewReader(blob.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to upload regressor to gridfs: %w", err)
	}

	filter := bson.M{"model_type": models.ModelTypeFareRegression}
	if _, err := s.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete prior model documents: %w", err)
	}

	doc := models.ModelDocument{
		ModelType:   models.ModelTypeFareRegression,
		ModelFileID: &fileID,
		Features:    b.Features,
		Metrics:     b.Metrics,
		TrainedAt:   time.Now().UTC(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert model document: %w", err)
	}
	return nil
}

// Load resolves a serving bundle with file precedence: a freshly trained
// local artifact is used without a database round-trip; the store is only
// consulted when no file exists. A nil store skips the database fallback.
func Load(ctx context.Context, path string, store *Store) (*Bundle, error) {
	bundle, err := LoadFromFile(path)
	if err != nil || bundle != nil {
		return bundle, err
	}
	if store == nil {
		return nil, nil
	}
	return store.LoadLatest(ctx)
}
