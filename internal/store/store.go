// Package store persists the accumulated classified-point and
// country-summary datasets across processing runs.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// ErrDuplicateCountryYear is returned by AppendRun when any (country, year)
// pair of the new summaries is already present. The check runs before any
// write, so a rejected append leaves the datasets unchanged and never
// double-counts a survey wave.
var ErrDuplicateCountryYear = eris.New("store: country-year already present")

// CountryYear identifies one accumulated survey wave.
type CountryYear struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
}

// Store is the accumulated-dataset interface. One AppendRun per processed
// extract; Points and Summaries return snapshots of everything accumulated
// so far.
type Store interface {
	// AppendRun atomically appends one run's outputs, recording the source
	// filename against a fresh run ID. Fails with ErrDuplicateCountryYear
	// without writing anything when a wave is already present.
	AppendRun(ctx context.Context, source string, points []lucas.ClassifiedPoint, summaries []lucas.CountrySummary) (string, error)

	Points(ctx context.Context) ([]lucas.ClassifiedPoint, error)
	Summaries(ctx context.Context) ([]lucas.CountrySummary, error)
	CountryYears(ctx context.Context) ([]CountryYear, error)

	Migrate(ctx context.Context) error
	Close() error
}
