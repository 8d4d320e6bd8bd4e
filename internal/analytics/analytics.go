package analytics

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"carsearch/pkg/contracts/domain"
)

// DefaultTopN is how many ranked results the display list carries.
const DefaultTopN = 50

// MapPoint is one plottable coordinate pair from the filtered view.
type MapPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// YearPrice is one bar of a manufacturer chart: the cheapest listing price
// observed for that model year.
type YearPrice struct {
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

// ChartSeries is the bar-chart payload for one selected manufacturer.
type ChartSeries struct {
	Manufacturer string      `json:"manufacturer"`
	Title        string      `json:"title"`
	Points       []YearPrice `json:"points"`
}

// FacetOptions carries the values a client needs to build its filter
// controls: sorted unique capitalized values per filterable column plus the
// global price bounds.
type FacetOptions struct {
	Manufacturers []string `json:"manufacturers"`
	PaintColors   []string `json:"paint_colors"`
	Transmissions []string `json:"transmissions"`
	Drives        []string `json:"drives"`
	PriceMin      float64  `json:"price_min"`
	PriceMax      float64  `json:"price_max"`
}

// Presenter turns filtered views into display-ready artifacts.
type Presenter struct {
	logger *slog.Logger
	topN   int
}

// NewPresenter creates a presenter. topN <= 0 falls back to DefaultTopN; a
// nil logger falls back to slog.Default.
func NewPresenter(logger *slog.Logger, topN int) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Presenter{
		logger: logger.With(slog.String("component", "presenter")),
		topN:   topN,
	}
}

// RankedLabels formats the first topN rows of the view as 1-indexed display
// labels: "3. Ford F-150(2010) $10,000". The view is expected to already be
// price-descending; ranking is purely positional.
func (p *Presenter) RankedLabels(view []domain.Listing) []string {
	n := len(view)
	if n > p.topN {
		n = p.topN
	}
	labels := make([]string, 0, n)
	for i, row := range view[:n] {
		labels = append(labels, fmt.Sprintf("%d. %s %s(%d) $%s",
			i+1, Capitalize(row.Manufacturer), Capitalize(row.Model), row.Year, FormatPrice(row.Price)))
	}
	return labels
}

// MeanPrice returns the arithmetic mean of the price column rounded to two
// decimals. An empty view has no mean: the sentinel NaN is returned with
// defined=false, never an error.
func (p *Presenter) MeanPrice(view []domain.Listing) (mean float64, defined bool) {
	if len(view) == 0 {
		return math.NaN(), false
	}
	var sum float64
	for _, row := range view {
		sum += row.Price
	}
	mean = sum / float64(len(view))
	return math.Round(mean*100) / 100, true
}

// YearPriceSeries builds one chart series per selected manufacturer: the
// minimum price per distinct model year among that manufacturer's rows in
// the view. Only explicitly selected manufacturers get a series, so an empty
// selection yields zero charts. Year order is first-encounter order over the
// view, stable across repeated calls with the same input.
func (p *Presenter) YearPriceSeries(view []domain.Listing, selected []string) []ChartSeries {
	series := make([]ChartSeries, 0, len(selected))
	for _, manufacturer := range selected {
		want := strings.ToLower(manufacturer)

		var years []int
		minByYear := make(map[int]float64)
		for _, row := range view {
			if row.Manufacturer != want {
				continue
			}
			if best, ok := minByYear[row.Year]; !ok {
				years = append(years, row.Year)
				minByYear[row.Year] = row.Price
			} else if row.Price < best {
				minByYear[row.Year] = row.Price
			}
		}

		points := make([]YearPrice, 0, len(years))
		for _, year := range years {
			points = append(points, YearPrice{Year: year, Price: minByYear[year]})
		}
		series = append(series, ChartSeries{
			Manufacturer: Capitalize(want),
			Title:        Capitalize(want) + " Cheapest Car By Year",
			Points:       points,
		})
	}
	return series
}

// MapPoints extracts the coordinates of every row in the view for the map
// sink.
func (p *Presenter) MapPoints(view []domain.Listing) []MapPoint {
	points := make([]MapPoint, 0, len(view))
	for _, row := range view {
		points = append(points, MapPoint{Lat: row.Lat, Lon: row.Lon})
	}
	return points
}

// Options derives the facet options from the canonical table's rows.
func (p *Presenter) Options(rows []domain.Listing) FacetOptions {
	opts := FacetOptions{
		Manufacturers: uniqueCapitalized(rows, func(l domain.Listing) string { return l.Manufacturer }),
		PaintColors:   uniqueCapitalized(rows, func(l domain.Listing) string { return l.PaintColor }),
		Transmissions: uniqueCapitalized(rows, func(l domain.Listing) string { return l.Transmission }),
		Drives:        uniqueCapitalized(rows, func(l domain.Listing) string { return l.Drive }),
	}
	for i, row := range rows {
		if i == 0 || row.Price < opts.PriceMin {
			opts.PriceMin = row.Price
		}
		if row.Price > opts.PriceMax {
			opts.PriceMax = row.Price
		}
	}
	return opts
}

// uniqueCapitalized collects the sorted unique values of one column,
// capitalized for display.
func uniqueCapitalized(rows []domain.Listing, get func(domain.Listing) string) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[get(row)] = true
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	for i, v := range values {
		values[i] = Capitalize(v)
	}
	return values
}

// Capitalize upper-cases the first rune and lower-cases the rest, the same
// treatment the display layer applies to manufacturer and model names.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price with thousands separators: 10000 -> "10,000".
// Non-integral prices keep two decimals.
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return pricePrinter.Sprintf("%d", int64(price))
	}
	return pricePrinter.Sprintf("%.2f", price)
}
