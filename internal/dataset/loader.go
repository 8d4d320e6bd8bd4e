package dataset

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	apierrors "carsearch/internal/errors"
	"carsearch/pkg/contracts/domain"
)

// Raw column names expected from the source, before the canonical rename of
// "long" to "lon".
const (
	colPrice        = "price"
	colModel        = "model"
	colManufacturer = "manufacturer"
	colPaintColor   = "paint_color"
	colTransmission = "transmission"
	colDrive        = "drive"
	colYear         = "year"
	colLat          = "lat"
	colLong         = "long"
)

// requiredColumns are the columns a row must populate to survive cleaning.
// Year is deliberately not on this list; it mirrors the null-drop set of the
// original dataset pipeline.
var requiredColumns = []string{
	colPrice,
	colModel,
	colManufacturer,
	colPaintColor,
	colTransmission,
	colDrive,
	colLat,
	colLong,
}

// CleanReport accounts for every raw row: kept, or dropped with a reason.
type CleanReport struct {
	SourceRows         int `json:"source_rows"`
	MissingDropped     int `json:"missing_dropped"`
	DuplicateDropped   int `json:"duplicate_dropped"`
	UnparseableDropped int `json:"unparseable_dropped"`
	Rows               int `json:"rows"`
}

// Loader turns raw source rows into the canonical listing table.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataset_loader"))}
}

// Load reads every row from src and applies the cleaning sequence: drop rows
// missing any required column, drop exact duplicates, rename long to lon, and
// coerce numeric fields (dropping rows whose price or coordinates fail to
// parse). Malformed individual rows are excluded, never fatal; a missing
// required column or unreadable source fails the whole load with a
// DataSourceError.
func (l *Loader) Load(ctx context.Context, src Source) (*Table, CleanReport, error) {
	columns, rows, err := src.ReadAll(ctx)
	if err != nil {
		return nil, CleanReport{}, err
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		seen[col] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, CleanReport{}, apierrors.NewDataSourceError(
			src.Name(), "missing required columns: "+strings.Join(missing, ", "), nil)
	}

	listings, report := cleanRows(rows)
	table := newTable(listings)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", src.Name()),
		slog.String("table_id", table.ID()),
		slog.Int("source_rows", report.SourceRows),
		slog.Int("missing_dropped", report.MissingDropped),
		slog.Int("duplicate_dropped", report.DuplicateDropped),
		slog.Int("unparseable_dropped", report.UnparseableDropped),
		slog.Int("rows", report.Rows))

	return table, report, nil
}

// cleanRows applies the row-level cleaning rules. It is deterministic and
// idempotent: feeding a canonical table's own rows back through changes
// nothing.
func cleanRows(rows []RawRow) ([]domain.Listing, CleanReport) {
	report := CleanReport{SourceRows: len(rows)}
	listings := make([]domain.Listing, 0, len(rows))
	dupes := make(map[uint64]bool, len(rows))

	for _, row := range rows {
		if !hasRequiredValues(row) {
			report.MissingDropped++
			continue
		}

		key := rowHash(row)
		if dupes[key] {
			report.DuplicateDropped++
			continue
		}
		dupes[key] = true

		listing, ok := coerceRow(row)
		if !ok {
			report.UnparseableDropped++
			continue
		}
		listings = append(listings, listing)
	}

	report.Rows = len(listings)
	return listings, report
}

// hasRequiredValues checks presence across all required columns; a row is
// dropped if any single one is blank.
func hasRequiredValues(row RawRow) bool {
	for _, col := range requiredColumns {
		if isMissing(row[col]) {
			return false
		}
	}
	return true
}

// isMissing treats blank cells and NaN literals as absent values.
func isMissing(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "nan")
}

// rowHash fingerprints the modeled raw fields for exact-duplicate detection.
// 0x1f separators keep adjacent fields from colliding.
func rowHash(row RawRow) uint64 {
	var b strings.Builder
	for _, col := range []string{
		colPrice, colModel, colManufacturer, colPaintColor,
		colTransmission, colDrive, colYear, colLat, colLong,
	} {
		b.WriteString(strings.TrimSpace(row[col]))
		b.WriteByte(0x1f)
	}
	return xxh3.HashString(b.String())
}

// coerceRow parses numeric fields and normalizes the filterable text fields
// to lowercase. Rows whose price or coordinates cannot be parsed (or whose
// price is negative) are reported unparseable and dropped; a bad year only
// zeroes the field, matching the original pipeline which never null-dropped
// on year.
func coerceRow(row RawRow) (domain.Listing, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(row[colPrice]), 64)
	if err != nil || price < 0 {
		return domain.Listing{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[colLat]), 64)
	if err != nil {
		return domain.Listing{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[colLong]), 64)
	if err != nil {
		return domain.Listing{}, false
	}

	year := 0
	if y := strings.TrimSpace(row[colYear]); y != "" {
		// year cells sometimes carry a float rendering like "2010.0"
		if parsed, err := strconv.ParseFloat(y, 64); err == nil {
			year = int(parsed)
		}
	}

	return domain.Listing{
		Manufacturer: strings.ToLower(strings.TrimSpace(row[colManufacturer])),
		Model:        strings.ToLower(strings.TrimSpace(row[colModel])),
		Year:         year,
		Price:        price,
		PaintColor:   strings.ToLower(strings.TrimSpace(row[colPaintColor])),
		Transmission: strings.ToLower(strings.TrimSpace(row[colTransmission])),
		Drive:        strings.ToLower(strings.TrimSpace(row[colDrive])),
		Lat:          lat,
		Lon:          lon,
	}, true
}
