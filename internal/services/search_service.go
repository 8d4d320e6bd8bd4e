package services

import (
	"context"
	"log/slog"
	"time"

	"carsearch/internal/analytics"
	"carsearch/internal/config"
	"carsearch/internal/dataset"
	"carsearch/internal/filter"
	"carsearch/pkg/contracts/domain"
)

// SearchResult bundles everything the rendering sink needs for one set of
// criteria: the ranked labels, the mean-price summary, the map coordinates,
// and the per-manufacturer chart series.
type SearchResult struct {
	TableID     string                  `json:"table_id"`
	MatchCount  int                     `json:"match_count"`
	Labels      []string                `json:"labels"`
	MeanPrice   float64                 `json:"-"`
	MeanDefined bool                    `json:"-"`
	MapPoints   []analytics.MapPoint    `json:"map_points"`
	Series      []analytics.ChartSeries `json:"series"`
}

// SearchService provides filtered views and derived aggregates over the
// configured listing dataset.
type SearchService struct {
	cfg       *config.Config
	cache     *dataset.Cache
	presenter *analytics.Presenter
	logger    *slog.Logger
}

// NewSearchService creates a search service using default logger
func NewSearchService(cfg *config.Config) *SearchService {
	return NewSearchServiceWithLogger(cfg, slog.Default())
}

// NewSearchServiceWithLogger creates a search service with a specific logger
func NewSearchServiceWithLogger(cfg *config.Config, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	loader := dataset.NewLoader(logger)
	return &SearchService{
		cfg:       cfg,
		cache:     dataset.NewCache(loader, cfg.Dataset.SQLiteTable, logger),
		presenter: analytics.NewPresenter(logger, cfg.Dataset.TopResults),
		logger:    logger.With(slog.String("component", "search_service")),
	}
}

// Search recomputes the filtered view and all derived artifacts for the
// given criteria. Empty results are valid: the labels come back empty and
// the mean undefined, never an error.
func (s *SearchService) Search(ctx context.Context, criteria domain.Criteria) (*SearchResult, error) {
	start := time.Now()
	searchesTotal.Inc()

	table, _, err := s.cache.Load(ctx, s.cfg.Dataset.Path)
	if err != nil {
		searchErrorsTotal.Inc()
		return nil, err
	}
	datasetRows.Set(float64(table.Len()))

	view, err := filter.Apply(table.Rows(), criteria)
	if err != nil {
		searchErrorsTotal.Inc()
		return nil, err
	}

	mean, defined := s.presenter.MeanPrice(view)
	result := &SearchResult{
		TableID:     table.ID(),
		MatchCount:  len(view),
		Labels:      s.presenter.RankedLabels(view),
		MeanPrice:   mean,
		MeanDefined: defined,
		MapPoints:   s.presenter.MapPoints(view),
		Series:      s.presenter.YearPriceSeries(view, criteria.Manufacturers),
	}

	searchDuration.Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "search completed",
		slog.String("table_id", table.ID()),
		slog.Int("matches", result.MatchCount),
		slog.Int("series", len(result.Series)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// Options returns the facet options derived from the canonical table, for
// populating filter controls.
func (s *SearchService) Options(ctx context.Context) (*analytics.FacetOptions, error) {
	table, _, err := s.cache.Load(ctx, s.cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	opts := s.presenter.Options(table.Rows())
	return &opts, nil
}
