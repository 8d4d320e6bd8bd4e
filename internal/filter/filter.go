package filter

import (
	"math"
	"sort"
	"strings"

	apierrors "carsearch/internal/errors"
	"carsearch/pkg/contracts/domain"
)

// Field names a filterable column of a listing.
type Field string

// Filterable listing fields
const (
	FieldPrice        Field = "price"
	FieldYear         Field = "year"
	FieldManufacturer Field = "manufacturer"
	FieldModel        Field = "model"
	FieldPaintColor   Field = "paint_color"
	FieldTransmission Field = "transmission"
	FieldDrive        Field = "drive"
)

// numericValue extracts the numeric fields; ok is false for text fields.
func numericValue(l domain.Listing, f Field) (float64, bool) {
	switch f {
	case FieldPrice:
		return l.Price, true
	case FieldYear:
		return float64(l.Year), true
	default:
		return 0, false
	}
}

// textValue extracts the text fields; ok is false for numeric fields.
func textValue(l domain.Listing, f Field) (string, bool) {
	switch f {
	case FieldManufacturer:
		return l.Manufacturer, true
	case FieldModel:
		return l.Model, true
	case FieldPaintColor:
		return l.PaintColor, true
	case FieldTransmission:
		return l.Transmission, true
	case FieldDrive:
		return l.Drive, true
	default:
		return "", false
	}
}

// ByRange keeps rows where min <= value <= max on a numeric field, both
// bounds inclusive. The result is a new slice sorted by that field
// descending; this ordering is part of the contract and feeds the ranked
// top-N display. min > max fails with an InvalidRangeError, never a silent
// swap or clamp.
func ByRange(rows []domain.Listing, field Field, min, max float64) ([]domain.Listing, error) {
	if min > max {
		return nil, apierrors.NewInvalidRangeError(string(field), min, max)
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		v, ok := numericValue(row, field)
		if ok && v >= min && v <= max {
			out = append(out, row)
		}
	}
	sortByFieldDesc(out, field)
	return out, nil
}

// ByEquality keeps rows whose field equals value case-insensitively. An
// empty value is the identity: the input view is returned unchanged.
func ByEquality(rows []domain.Listing, field Field, value string) []domain.Listing {
	if value == "" {
		return rows
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		v, ok := textValue(row, field)
		if ok && strings.EqualFold(v, value) {
			out = append(out, row)
		}
	}
	return out
}

// BySet keeps rows whose field matches any member of values, case-
// insensitively. An empty set is the identity — the view is returned
// unchanged, never emptied. This is the rule that keeps an unselected
// multiselect from wiping out all results.
func BySet(rows []domain.Listing, field Field, values []string) []domain.Listing {
	if len(values) == 0 {
		return rows
	}

	accepted := make(map[string]bool, len(values))
	for _, v := range values {
		accepted[strings.ToLower(v)] = true
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		v, ok := textValue(row, field)
		if ok && accepted[strings.ToLower(v)] {
			out = append(out, row)
		}
	}
	return out
}

// Apply composes all active criteria dimensions over the view. Each
// predicate is a pure intersection, so application order cannot change the
// row set; unset dimensions are skipped. The result is always sorted by
// price descending — even without an active price filter — so the ranked
// display stays well-defined.
func Apply(rows []domain.Listing, c domain.Criteria) ([]domain.Listing, error) {
	out := rows

	if c.HasPriceRange() {
		lo := 0.0
		hi := math.Inf(1)
		if c.PriceMin != nil {
			lo = *c.PriceMin
		}
		if c.PriceMax != nil {
			hi = *c.PriceMax
		}
		var err error
		out, err = ByRange(out, FieldPrice, lo, hi)
		if err != nil {
			return nil, err
		}
	}

	out = BySet(out, FieldManufacturer, c.Manufacturers)
	out = BySet(out, FieldPaintColor, c.PaintColors)
	out = ByEquality(out, FieldTransmission, c.Transmission)
	out = ByEquality(out, FieldDrive, c.Drive)

	// Sort a fresh copy: identity predicates may have handed back the
	// caller's slice, which must stay untouched.
	sorted := make([]domain.Listing, len(out))
	copy(sorted, out)
	sortByFieldDesc(sorted, FieldPrice)
	return sorted, nil
}

// sortByFieldDesc orders rows by a numeric field descending. Stable so that
// equal-valued rows keep their table order across repeated calls.
func sortByFieldDesc(rows []domain.Listing, field Field) {
	sort.SliceStable(rows, func(i, j int) bool {
		vi, _ := numericValue(rows[i], field)
		vj, _ := numericValue(rows[j], field)
		return vi > vj
	})
}
