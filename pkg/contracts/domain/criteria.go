package domain

// Criteria holds the user-selected constraints across the five independent
// filter dimensions. A zero value on any dimension means "no constraint":
// nil price bounds, empty sets, empty choice strings.
//
// Set and choice values are matched case-insensitively against the stored
// lowercase listing fields, so callers may pass display-capitalized values
// straight from UI widgets.
type Criteria struct {
	PriceMin      *float64 `json:"price_min,omitempty"`
	PriceMax      *float64 `json:"price_max,omitempty"`
	Manufacturers []string `json:"manufacturers,omitempty"`
	PaintColors   []string `json:"paint_colors,omitempty"`
	Transmission  string   `json:"transmission,omitempty"`
	Drive         string   `json:"drive,omitempty"`
}

// HasPriceRange reports whether at least one price bound is set.
func (c Criteria) HasPriceRange() bool {
	return c.PriceMin != nil || c.PriceMax != nil
}
