package dataset

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFrameFromDocsNormalizesTimestamps(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)
	docs := []bson.M{
		{"pickup_time": primitive.NewDateTimeFromTime(now), "pickup_zone": "A"},
		{"pickup_time": "2025-01-01T09:00:00Z", "pickup_zone": "B"},
		{"pickup_time": "not a timestamp", "pickup_zone": "C"},
		{"pickup_zone": "D"},
	}

	frame, err := frameFromDocs(docs, []string{"pickup_time", "pickup_zone"})
	if err != nil {
		t.Fatal(err)
	}
	col, err := frame.Column("pickup_time")
	if err != nil {
		t.Fatal(err)
	}

	if !col.Valid[0] || !col.Times[0].Equal(now) {
		t.Errorf("bson datetime not preserved: %v (valid=%v)", col.Times[0], col.Valid[0])
	}
	if !col.Valid[1] || col.Times[1].Hour() != 9 {
		t.Errorf("string timestamp not parsed: %v (valid=%v)", col.Times[1], col.Valid[1])
	}
	if col.Valid[2] {
		t.Error("unparseable timestamp should be null")
	}
	if col.Valid[3] {
		t.Error("absent timestamp should be null")
	}
}

func TestFrameFromDocsNullMarkers(t *testing.T) {
	docs := []bson.M{
		{"fare": 100.0, "hour": int32(9), "pickup_zone": "A"},
		{"fare": nil, "hour": nil, "pickup_zone": nil},
		{},
	}
	frame, err := frameFromDocs(docs, []string{"fare", "hour", "pickup_zone"})
	if err != nil {
		t.Fatal(err)
	}

	fares, valid, err := frame.Floats("fare")
	if err != nil {
		t.Fatal(err)
	}
	if !valid[0] || fares[0] != 100.0 {
		t.Errorf("fare[0] = %v (valid=%v), want 100 valid", fares[0], valid[0])
	}
	if valid[1] || valid[2] {
		t.Error("explicit nil and absent fields should both be null")
	}

	hours, valid, err := frame.Ints("hour")
	if err != nil {
		t.Fatal(err)
	}
	if !valid[0] || hours[0] != 9 {
		t.Errorf("hour[0] = %v (valid=%v), want 9 valid", hours[0], valid[0])
	}
}

func TestFrameFromDocsEmpty(t *testing.T) {
	frame, err := frameFromDocs(nil, DashboardColumns)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Len() != 0 {
		t.Errorf("empty result should yield empty frame, got %d rows", frame.Len())
	}
	for _, name := range DashboardColumns {
		if !frame.HasColumn(name) {
			t.Errorf("empty frame missing column %q", name)
		}
	}
}

func TestLoadRejectsUnknownColumn(t *testing.T) {
	if _, err := LoadFromMongo(nil, nil, 10, []string{"no_such_column"}); err == nil {
		t.Error("expected schema error for unknown column")
	}
}
