// Package analytics derives the presentation artifacts from a filtered
// listing view: the ranked top-N label list, the mean-price summary, the
// per-manufacturer cheapest-price-by-year chart series, map points, and the
// facet options used to populate filter controls. Everything here is a pure
// transform over the view; nothing draws or prints.
package analytics
