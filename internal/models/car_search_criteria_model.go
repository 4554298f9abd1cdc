package models

// CarSearchCriteria contains all the possible ways to filter the car catalog.
// A nil numeric field or an empty Colour means that attribute is not filtered on.
type CarSearchCriteria struct {
	Length   *float64 `json:"length,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Velocity *float64 `json:"velocity,omitempty"`
	Colour   string   `json:"colour,omitempty"`
}

// IsEmpty reports whether no field of the criteria is set.
func (c *CarSearchCriteria) IsEmpty() bool {
	return c == nil || (c.Length == nil && c.Weight == nil && c.Velocity == nil && c.Colour == "")
}
