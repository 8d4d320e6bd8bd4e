package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_ReusesTableForUnchangedFile(t *testing.T) {
	path := writeCSV(t, [][]string{testHeader, goodRecord("1")})
	cache := NewCache(NewLoader(nil), "listings", nil)

	first, _, err := cache.Load(context.Background(), path)
	require.NoError(t, err)

	second, _, err := cache.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second, "unchanged file must hit the cache")
	assert.Equal(t, first.ID(), second.ID())
}

func TestCache_InvalidatesWhenFileChanges(t *testing.T) {
	path := writeCSV(t, [][]string{testHeader, goodRecord("1")})
	cache := NewCache(NewLoader(nil), "listings", nil)

	first, _, err := cache.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())

	// Rewrite with an extra row; the size change alone must invalidate.
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll([][]string{
		testHeader,
		goodRecord("1"),
		{"2", "8000", "focus", "ford", "blue", "manual", "fwd", "2011", "40.7", "-74.0"},
	}))
	w.Flush()
	require.NoError(t, f.Close())
	// Nudge mtime in case the rewrite lands inside the previous timestamp's
	// granularity window.
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Second)))

	second, _, err := cache.Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, second.Len())
}

func TestCache_MissingFile(t *testing.T) {
	cache := NewCache(NewLoader(nil), "listings", nil)
	_, _, err := cache.Load(context.Background(), "/nonexistent/vehicles.csv")
	require.Error(t, err)
}
