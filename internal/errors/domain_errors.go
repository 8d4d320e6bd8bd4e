package errors

import (
	"errors"
	"fmt"
)

// DataSourceError reports a dataset source that could not be read or parsed:
// the file is missing, unreadable, or lacks required columns. It is fatal at
// load time; there is no partial or degraded load.
type DataSourceError struct {
	Source string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data source %q: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data source %q: %s", e.Source, e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// NewDataSourceError creates a DataSourceError for the given source
func NewDataSourceError(source, reason string, err error) *DataSourceError {
	return &DataSourceError{Source: source, Reason: reason, Err: err}
}

// IsDataSource reports whether err is (or wraps) a DataSourceError
func IsDataSource(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// InvalidRangeError reports a range filter whose lower bound exceeds its
// upper bound. Bounds are never swapped or clamped on the caller's behalf.
type InvalidRangeError struct {
	Field string
	Min   float64
	Max   float64
}

// Error implements the error interface
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range for %s: min %v is greater than max %v", e.Field, e.Min, e.Max)
}

// NewInvalidRangeError creates an InvalidRangeError for the given field and bounds
func NewInvalidRangeError(field string, min, max float64) *InvalidRangeError {
	return &InvalidRangeError{Field: field, Min: min, Max: max}
}

// IsInvalidRange reports whether err is (or wraps) an InvalidRangeError
func IsInvalidRange(err error) bool {
	var ire *InvalidRangeError
	return errors.As(err, &ire)
}
