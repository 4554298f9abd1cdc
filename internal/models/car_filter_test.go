package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestNewCarFilter_Empty(t *testing.T) {
	for _, criteria := range []*CarSearchCriteria{nil, {}} {
		filter := NewCarFilter(criteria)

		assert.Equal(t, 0, filter.Len())
		assert.Equal(t, bson.M{}, filter.Document())
		assert.True(t, filter.Matches(&CarModel{Colour: "Anything"}))
		assert.True(t, criteria.IsEmpty())
	}
}

func TestNewCarFilter_Predicates(t *testing.T) {
	car := &CarModel{Length: 3.5, Weight: 1500, Velocity: 130, Colour: "Red"}

	tests := []struct {
		name     string
		criteria CarSearchCriteria
		want     bool
	}{
		{"length equal", CarSearchCriteria{Length: floatPtr(3.5)}, true},
		{"length differs", CarSearchCriteria{Length: floatPtr(3.5000001)}, false},
		{"weight equal", CarSearchCriteria{Weight: floatPtr(1500)}, true},
		{"weight negative", CarSearchCriteria{Weight: floatPtr(-500)}, false},
		{"velocity equal", CarSearchCriteria{Velocity: floatPtr(130)}, true},
		{"velocity zero", CarSearchCriteria{Velocity: floatPtr(0)}, false},
		{"colour same case", CarSearchCriteria{Colour: "Red"}, true},
		{"colour mixed case", CarSearchCriteria{Colour: "rEd"}, true},
		{"colour prefix only", CarSearchCriteria{Colour: "Re"}, false},
		{"all match", CarSearchCriteria{Length: floatPtr(3.5), Weight: floatPtr(1500), Velocity: floatPtr(130), Colour: "RED"}, true},
		{"one of many differs", CarSearchCriteria{Length: floatPtr(3.5), Weight: floatPtr(1500), Velocity: floatPtr(120), Colour: "red"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewCarFilter(&tt.criteria)
			assert.Equal(t, tt.want, filter.Matches(car))
			assert.False(t, tt.criteria.IsEmpty())
		})
	}
}

func TestNewCarFilter_UnicodeColourFolding(t *testing.T) {
	filter := NewCarFilter(&CarSearchCriteria{Colour: "GRÜN"})

	assert.True(t, filter.Matches(&CarModel{Colour: "grün"}))
	assert.False(t, filter.Matches(&CarModel{Colour: "grun"}))
}

func TestNewCarFilter_Document(t *testing.T) {
	filter := NewCarFilter(&CarSearchCriteria{
		Length:   floatPtr(5),
		Velocity: floatPtr(120),
		Colour:   "Blue.Green",
	})

	assert.Equal(t, 3, filter.Len())
	assert.Equal(t, bson.M{
		"length":   5.0,
		"velocity": 120.0,
		"colour": bson.M{
			"$regex": primitive.Regex{Pattern: `^Blue\.Green$`, Options: "i"},
		},
	}, filter.Document())

	// callers get a copy
	filter.Document()["weight"] = 1.0
	assert.NotContains(t, filter.Document(), "weight")
}
