package dataset

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DashboardColumns is the projection used by the analytics dashboard.
// Loading fewer columns keeps transfer volume and memory down.
var DashboardColumns = []string{
	"pickup_time",
	"pickup_zone",
	"fare",
	"hour",
	"vehicle_type",
	"surge_multiplier",
	"weather_condition",
}

// schema fixes the type of every known trip column. Documents are validated
// against it at the ingestion boundary instead of flowing through the app as
// untyped maps.
var schema = map[string]Kind{
	"pickup_time":          KindTime,
	"pickup_zone":          KindString,
	"dropoff_zone":         KindString,
	"distance_km":          KindFloat,
	"duration_min":         KindFloat,
	"vehicle_type":         KindString,
	"payment_method":       KindString,
	"weather_condition":    KindString,
	"hour":                 KindInt,
	"day_of_week":          KindInt,
	"is_peak_hour":         KindInt,
	"zone_demand_level":    KindInt,
	"trip_distance_bucket": KindInt,
	"surge_multiplier":     KindFloat,
	"fare":                 KindFloat,
}

// LoadFromMongo fetches at most limit documents with only the named columns
// projected and materializes them into a Frame. A zero-document result is an
// empty frame, not an error. Query failures propagate without retry.
func LoadFromMongo(ctx context.Context, coll *mongo.Collection, limit int64, columns []string) (*Frame, error) {
	for _, name := range columns {
		if _, ok := schema[name]; !ok {
			return nil, fmt.Errorf("unknown trip column %q", name)
		}
	}

	projection := bson.M{"_id": 0}
	for _, name := range columns {
		projection[name] = 1
	}

	opts := options.Find().SetProjection(projection)
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read trip cursor: %w", err)
	}

	return frameFromDocs(docs, columns)
}

func frameFromDocs(docs []bson.M, columns []string) (*Frame, error) {
	frame := NewFrame()
	n := len(docs)

	for _, name := range columns {
		kind := schema[name]
		valid := make([]bool, n)

		var err error
		switch kind {
		case KindFloat:
			values := make([]float64, n)
			for i, doc := range docs {
				values[i], valid[i] = asFloat(doc[name])
			}
			err = frame.AddFloats(name, values, valid)
		case KindInt:
			values := make([]int64, n)
			for i, doc := range docs {
				values[i], valid[i] = asInt(doc[name])
			}
			err = frame.AddInts(name, values, valid)
		case KindString:
			values := make([]string, n)
			for i, doc := range docs {
				values[i], valid[i] = asString(doc[name])
			}
			err = frame.AddStrings(name, values, valid)
		case KindTime:
			values := make([]time.Time, n)
			for i, doc := range docs {
				values[i], valid[i] = asTime(doc[name])
			}
			err = frame.AddTimes(name, values, valid)
		}
		if err != nil {
			return nil, err
		}
	}

	return frame, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asTime normalizes the stored timestamp to time.Time. String timestamps
// from older imports are parsed; anything unparseable becomes null.
func asTime(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time(), true
	case time.Time:
		return x, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
