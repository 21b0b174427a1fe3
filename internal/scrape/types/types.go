package types

import (
	"context"
	"strings"

	"leadgen-engine/internal/domain"
)

// Query is one search phrase plus the raw terms it was built from, so
// directory-style sources (YellowPages, Yelp) can use industry and
// location separately.
type Query struct {
	Text     string
	Industry string
	Location string
}

// NewQuery builds a Query from a template such as
// "{industry} companies in {location}".
func NewQuery(template, industry, location string) Query {
	r := strings.NewReplacer("{industry}", industry, "{location}", location)
	return Query{
		Text:     strings.Join(strings.Fields(r.Replace(template)), " "),
		Industry: industry,
		Location: location,
	}
}

// Source is one search adapter. Fetch never fails: adapters log their own
// errors and return whatever they managed to collect (possibly nothing).
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query, max int) []domain.SearchResult
}

// SourceStatus is the last-run bookkeeping for one adapter, served on
// GET /health.
type SourceStatus struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastResults int    `json:"last_results"`
	Runs        int    `json:"runs"`
}
