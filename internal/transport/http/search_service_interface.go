package http

import (
	"context"

	"carsearch/internal/analytics"
	"carsearch/internal/services"
	"carsearch/pkg/contracts/domain"
)

// SearchServiceInterface defines what the handlers need from the search
// service; it keeps handler tests free of real dataset loading.
type SearchServiceInterface interface {
	Search(ctx context.Context, criteria domain.Criteria) (*services.SearchResult, error)
	Options(ctx context.Context) (*analytics.FacetOptions, error)
}
