package http

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/hytech-racing/car-search-webserver/internal/models"
)

const (
	lengthParam   = "length"
	weightParam   = "weight"
	velocityParam = "velocity"
	colourParam   = "colour"
)

// bindSearchCriteria reads the search criteria from the query string.
// Parameter names are matched case-insensitively, empty values mean the field
// is not filtered on and unknown parameters are ignored.
func bindSearchCriteria(query url.Values) (*models.CarSearchCriteria, error) {
	values, err := foldQuery(query)
	if err != nil {
		return nil, err
	}

	criteria := &models.CarSearchCriteria{}
	if criteria.Length, err = parseNumberParam(lengthParam, values[lengthParam]); err != nil {
		return nil, err
	}
	if criteria.Weight, err = parseNumberParam(weightParam, values[weightParam]); err != nil {
		return nil, err
	}
	if criteria.Velocity, err = parseNumberParam(velocityParam, values[velocityParam]); err != nil {
		return nil, err
	}
	criteria.Colour = values[colourParam]

	return criteria, nil
}

var searchParams = map[string]struct{}{
	lengthParam:   {},
	weightParam:   {},
	velocityParam: {},
	colourParam:   {},
}

// foldQuery lower-cases the search parameter names and keeps the non-empty value of each.
// A search parameter given twice with different values is rejected, anything else is dropped.
func foldQuery(query url.Values) (map[string]string, error) {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	folded := make(map[string]string, len(query))
	for _, key := range keys {
		name := strings.ToLower(key)
		if _, ok := searchParams[name]; !ok {
			continue
		}
		for _, value := range query[key] {
			if value == "" {
				continue
			}
			if previous, ok := folded[name]; ok && previous != value {
				return nil, fmt.Errorf("query parameter %q was given more than once", name)
			}
			folded[name] = value
		}
	}
	return folded, nil
}

func parseNumberParam(name string, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("query parameter %q must be a finite number, got %q", name, raw)
	}
	return &value, nil
}
