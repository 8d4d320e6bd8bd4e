package dataset

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	apierrors "carsearch/internal/errors"
)

// Cache memoizes Load results keyed by source path identity. The key is
// (size, mtime): the entry is rebuilt when either changes, so editing or
// replacing the dataset file invalidates the cached table on the next load.
// This is the externally-owned memoization around the load step; Load itself
// stays cache-free.
type Cache struct {
	loader      *Loader
	sqliteTable string
	logger      *slog.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheKey struct {
	size    int64
	modTime time.Time
}

type cacheEntry struct {
	key    cacheKey
	table  *Table
	report CleanReport
}

// NewCache creates a load cache around the given loader.
func NewCache(loader *Loader, sqliteTable string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader:      loader,
		sqliteTable: sqliteTable,
		logger:      logger.With(slog.String("component", "dataset_cache")),
		entries:     make(map[string]cacheEntry),
	}
}

// Load returns the canonical table for path, loading it only when the file
// identity changed since the last call. Repeat calls with an unchanged file
// return the identical table snapshot.
func (c *Cache) Load(ctx context.Context, path string) (*Table, CleanReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, CleanReport{}, apierrors.NewDataSourceError(path, "cannot stat file", err)
	}
	key := cacheKey{size: info.Size(), modTime: info.ModTime()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok && entry.key == key {
		return entry.table, entry.report, nil
	}

	src, err := Open(path, c.sqliteTable)
	if err != nil {
		return nil, CleanReport{}, err
	}
	table, report, err := c.loader.Load(ctx, src)
	if err != nil {
		return nil, CleanReport{}, err
	}

	c.entries[path] = cacheEntry{key: key, table: table, report: report}
	c.logger.InfoContext(ctx, "dataset cache refreshed",
		slog.String("path", path),
		slog.String("table_id", table.ID()),
		slog.Int("rows", table.Len()))

	return table, report, nil
}
