package models

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarPredicate reports whether a car should be kept.
type CarPredicate func(car *CarModel) bool

// CarFilter is the conjunction of one predicate per criteria field that is set.
// The same conditions are kept as a bson document so the Mongo store can run
// them server side.
type CarFilter struct {
	predicates []CarPredicate
	document   bson.M
}

// NewCarFilter composes a CarFilter out of the fields set on criteria.
func NewCarFilter(criteria *CarSearchCriteria) *CarFilter {
	filter := &CarFilter{document: bson.M{}}
	if criteria == nil {
		return filter
	}

	if criteria.Length != nil {
		length := *criteria.Length
		filter.add("length", length, func(car *CarModel) bool { return car.Length == length })
	}

	if criteria.Weight != nil {
		weight := *criteria.Weight
		filter.add("weight", weight, func(car *CarModel) bool { return car.Weight == weight })
	}

	if criteria.Velocity != nil {
		velocity := *criteria.Velocity
		filter.add("velocity", velocity, func(car *CarModel) bool { return car.Velocity == velocity })
	}

	if criteria.Colour != "" {
		colour := criteria.Colour
		filter.add("colour", bson.M{
			"$regex": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(colour) + "$", Options: "i"},
		}, func(car *CarModel) bool { return strings.EqualFold(car.Colour, colour) })
	}

	return filter
}

func (f *CarFilter) add(field string, condition interface{}, predicate CarPredicate) {
	f.document[field] = condition
	f.predicates = append(f.predicates, predicate)
}

// Matches reports whether car satisfies every predicate of the filter.
// An empty filter matches everything.
func (f *CarFilter) Matches(car *CarModel) bool {
	for _, predicate := range f.predicates {
		if !predicate(car) {
			return false
		}
	}
	return true
}

// Len returns the number of predicates in the filter.
func (f *CarFilter) Len() int {
	return len(f.predicates)
}

// Document returns the MongoDB query document equivalent to the filter.
func (f *CarFilter) Document() bson.M {
	document := make(bson.M, len(f.document))
	for k, v := range f.document {
		document[k] = v
	}
	return document
}
