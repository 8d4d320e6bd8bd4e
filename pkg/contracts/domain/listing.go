package domain

// Listing is one row of the canonical used-vehicle table.
//
// Text fields that participate in filtering (manufacturer, paint color,
// transmission, drive) are stored lowercase; presentation-layer code
// capitalizes them for display. Longitude is carried under the canonical
// "lon" alias expected by map sinks, renamed from the raw "long" column
// during loading.
type Listing struct {
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	PaintColor   string  `json:"paint_color"`
	Transmission string  `json:"transmission"`
	Drive        string  `json:"drive"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}
