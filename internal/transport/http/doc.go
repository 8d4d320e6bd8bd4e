// Package http exposes the search core over a JSON API. The endpoints are
// the rendering-sink boundary: POST /search takes the five filter criteria
// and returns the ranked labels, mean price, map points, and chart series;
// GET /options returns the facet values a client needs to build its filter
// controls.
package http
