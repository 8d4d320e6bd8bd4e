package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"carsearch/internal/analytics"
	apierrors "carsearch/internal/errors"
	"carsearch/pkg/contracts/domain"
)

// SearchHandler handles search and facet-option requests
type SearchHandler struct {
	service  SearchServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service SearchServiceInterface, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "search_handler")),
		validate: validator.New(),
	}
}

// Routes returns the search routes
func (h *SearchHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/search", h.Search)
	r.Get("/options", h.Options)
	return r
}

// SearchRequest is the criteria payload from the client. Unset dimensions
// mean "no constraint"; bounds are validated non-negative but deliberately
// NOT reordered — a reversed range must surface as an error.
type SearchRequest struct {
	PriceMin      *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax      *float64 `json:"price_max" validate:"omitempty,gte=0"`
	Manufacturers []string `json:"manufacturers" validate:"omitempty,dive,min=1"`
	PaintColors   []string `json:"paint_colors" validate:"omitempty,dive,min=1"`
	Transmission  string   `json:"transmission"`
	Drive         string   `json:"drive"`
}

// SearchResponse is the rendering-sink payload: everything needed for the
// ranked list, the summary line, the map, and the bar charts. MeanPrice is
// null when the view is empty (the undefined sentinel).
type SearchResponse struct {
	TableID    string                  `json:"table_id"`
	MatchCount int                     `json:"match_count"`
	Results    []string                `json:"results"`
	MeanPrice  *float64                `json:"mean_price"`
	MapPoints  []analytics.MapPoint    `json:"map_points"`
	Charts     []analytics.ChartSeries `json:"charts"`
}

// Search handles POST /search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			render.Render(w, r, apierrors.ErrValidation(verrs[0].Field(), verrs[0].Tag()))
			return
		}
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	criteria := domain.Criteria{
		PriceMin:      req.PriceMin,
		PriceMax:      req.PriceMax,
		Manufacturers: req.Manufacturers,
		PaintColors:   req.PaintColors,
		Transmission:  req.Transmission,
		Drive:         req.Drive,
	}

	result, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "search failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.FromError(err))
		return
	}

	resp := SearchResponse{
		TableID:    result.TableID,
		MatchCount: result.MatchCount,
		Results:    result.Labels,
		MapPoints:  result.MapPoints,
		Charts:     result.Series,
	}
	if result.MeanDefined {
		mean := result.MeanPrice
		resp.MeanPrice = &mean
	}
	render.JSON(w, r, resp)
}

// Options handles GET /options
func (h *SearchHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "options failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.FromError(err))
		return
	}
	render.JSON(w, r, opts)
}
