package errors

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourceError(t *testing.T) {
	cause := os.ErrNotExist
	err := NewDataSourceError("vehicles.csv", "cannot open file", cause)

	assert.Contains(t, err.Error(), "vehicles.csv")
	assert.Contains(t, err.Error(), "cannot open file")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, IsDataSource(err))
	assert.True(t, IsDataSource(fmt.Errorf("load: %w", err)))
	assert.False(t, IsDataSource(errors.New("other")))
}

func TestDataSourceError_NoCause(t *testing.T) {
	err := NewDataSourceError("vehicles.csv", "missing required columns: paint_color", nil)
	assert.Equal(t, `data source "vehicles.csv": missing required columns: paint_color`, err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestInvalidRangeError(t *testing.T) {
	err := NewInvalidRangeError("price", 9500, 5000)

	assert.Equal(t, "invalid range for price: min 9500 is greater than max 5000", err.Error())
	assert.True(t, IsInvalidRange(err))
	assert.True(t, IsInvalidRange(fmt.Errorf("apply: %w", err)))
	assert.False(t, IsInvalidRange(errors.New("other")))
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid range maps to 400",
			err:        NewInvalidRangeError("price", 2, 1),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_RANGE",
		},
		{
			name:       "wrapped invalid range maps to 400",
			err:        fmt.Errorf("search: %w", NewInvalidRangeError("price", 2, 1)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_RANGE",
		},
		{
			name:       "data source maps to 500",
			err:        NewDataSourceError("vehicles.csv", "cannot open file", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATA_SOURCE_ERROR",
		},
		{
			name:       "unknown maps to generic internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}

	assert.Nil(t, FromError(nil))
}

func TestFromError_UnknownErrorDoesNotLeakMessage(t *testing.T) {
	apiErr := FromError(errors.New("secret internal detail"))
	assert.NotContains(t, apiErr.Message, "secret")
	assert.Nil(t, apiErr.Details)
}
