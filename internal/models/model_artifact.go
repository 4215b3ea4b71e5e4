package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModelTypeFareRegression tags fare-regression artifacts in the model
// collection. A new training run replaces any prior document with this tag.
const ModelTypeFareRegression = "fare_regression"

// ModelDocument is the persisted form of a trained model in Mongo. Exactly
// one of ModelFileID and ModelBlob is set: large regressors go to GridFS and
// are referenced by file id, small ones are embedded inline.
type ModelDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ModelType   string              `bson:"model_type" json:"model_type"`
	ModelFileID *primitive.ObjectID `bson:"model_file_id,omitempty" json:"model_file_id,omitempty"`
	ModelBlob   []byte              `bson:"model_blob,omitempty" json:"-"`
	Features    []string            `bson:"features" json:"features"`
	Metrics     Metrics             `bson:"metrics" json:"metrics"`
	TrainedAt   time.Time           `bson:"trained_at" json:"trained_at"`
}

// Metrics holds holdout evaluation results for a trained model.
type Metrics struct {
	RMSE float64 `bson:"rmse" json:"rmse"`
	R2   float64 `bson:"r2" json:"r2"`
}
