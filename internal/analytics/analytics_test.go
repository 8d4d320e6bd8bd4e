package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carsearch/pkg/contracts/domain"
)

func fordRows() []domain.Listing {
	return []domain.Listing{
		{Manufacturer: "ford", Model: "f-150", Price: 10000, Year: 2010, Lat: 41.1, Lon: -87.6},
		{Manufacturer: "ford", Model: "focus", Price: 8000, Year: 2010, Lat: 40.7, Lon: -74.0},
		{Manufacturer: "ford", Model: "escape", Price: 9000, Year: 2012, Lat: 34.0, Lon: -118.2},
	}
}

func TestRankedLabels(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	labels := p.RankedLabels(fordRows())

	require.Len(t, labels, 3)
	assert.Equal(t, "1. Ford F-150(2010) $10,000", labels[0])
	assert.Equal(t, "2. Ford Focus(2010) $8,000", labels[1])
	assert.Equal(t, "3. Ford Escape(2012) $9,000", labels[2])
}

func TestRankedLabels_TruncatesToTopN(t *testing.T) {
	p := NewPresenter(nil, 2)
	labels := p.RankedLabels(fordRows())
	require.Len(t, labels, 2)
	assert.Equal(t, "2. Ford Focus(2010) $8,000", labels[1])
}

func TestRankedLabels_EmptyView(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	assert.Empty(t, p.RankedLabels(nil))
}

func TestMeanPrice(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)

	mean, defined := p.MeanPrice(fordRows())
	assert.True(t, defined)
	assert.Equal(t, 9000.0, mean)
}

func TestMeanPrice_Rounding(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	view := []domain.Listing{{Price: 100}, {Price: 101}, {Price: 101}}

	mean, defined := p.MeanPrice(view)
	assert.True(t, defined)
	assert.Equal(t, 100.67, mean)
}

func TestMeanPrice_EmptyViewIsUndefinedNotPanic(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)

	mean, defined := p.MeanPrice(nil)
	assert.False(t, defined)
	assert.True(t, math.IsNaN(mean))
}

func TestYearPriceSeries_ConcreteScenario(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	series := p.YearPriceSeries(fordRows(), []string{"Ford"})

	require.Len(t, series, 1)
	assert.Equal(t, "Ford", series[0].Manufacturer)
	assert.Equal(t, "Ford Cheapest Car By Year", series[0].Title)

	got := make(map[int]float64, len(series[0].Points))
	for _, point := range series[0].Points {
		got[point.Year] = point.Price
	}
	assert.Equal(t, map[int]float64{2010: 8000, 2012: 9000}, got)
}

func TestYearPriceSeries_StableOrderAcrossCalls(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	first := p.YearPriceSeries(fordRows(), []string{"ford"})
	second := p.YearPriceSeries(fordRows(), []string{"ford"})
	assert.Equal(t, first, second)
}

func TestYearPriceSeries_EmptySelectionYieldsZeroCharts(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	assert.Empty(t, p.YearPriceSeries(fordRows(), nil))
	assert.Empty(t, p.YearPriceSeries(fordRows(), []string{}))
}

func TestYearPriceSeries_SelectedManufacturerAbsentFromView(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	series := p.YearPriceSeries(fordRows(), []string{"Toyota"})
	require.Len(t, series, 1)
	assert.Empty(t, series[0].Points)
}

func TestMapPoints(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	points := p.MapPoints(fordRows())
	require.Len(t, points, 3)
	assert.Equal(t, MapPoint{Lat: 41.1, Lon: -87.6}, points[0])
}

func TestOptions(t *testing.T) {
	p := NewPresenter(nil, DefaultTopN)
	rows := []domain.Listing{
		{Manufacturer: "toyota", PaintColor: "white", Transmission: "automatic", Drive: "fwd", Price: 12000},
		{Manufacturer: "ford", PaintColor: "red", Transmission: "manual", Drive: "4wd", Price: 8000},
		{Manufacturer: "ford", PaintColor: "blue", Transmission: "automatic", Drive: "fwd", Price: 10000},
	}

	opts := p.Options(rows)
	assert.Equal(t, []string{"Ford", "Toyota"}, opts.Manufacturers)
	assert.Equal(t, []string{"Blue", "Red", "White"}, opts.PaintColors)
	assert.Equal(t, []string{"Automatic", "Manual"}, opts.Transmissions)
	assert.Equal(t, []string{"4wd", "Fwd"}, opts.Drives)
	assert.Equal(t, 8000.0, opts.PriceMin)
	assert.Equal(t, 12000.0, opts.PriceMax)
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ford", "Ford"},
		{"f-150", "F-150"},
		{"GMC", "Gmc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in))
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10000, "10,000"},
		{999, "999"},
		{1234567, "1,234,567"},
		{10000.5, "10,000.50"},
		{0, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}
