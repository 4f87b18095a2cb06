// Package pipeline orchestrates one LUCAS processing run: standardize the
// raw extract, classify points, enrich with metadata, and summarize per
// country.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

// Process runs the full pipeline on one country-year raw table and returns
// the classified points and per-country summaries. It is a pure
// transformation: identical inputs give identical outputs, and a failed run
// produces nothing for the caller to merge.
//
// Standardization errors (unrecognized schema, missing required column)
// propagate so the caller rejects the file; they never surface as a silent
// empty result.
func Process(raw schema.RawTable, countries *schema.CountryRef, year int) ([]lucas.ClassifiedPoint, []lucas.CountrySummary, error) {
	points, err := schema.Standardize(raw, countries)
	if err != nil {
		return nil, nil, err
	}

	classified, err := lucas.Classify(points, lucas.ClassCodeSets())
	if err != nil {
		return nil, nil, err
	}

	// An extract covers a single country; the original workflow takes the
	// name from the first standardized row.
	var country string
	if len(points) > 0 {
		country = points[0].Country
	}
	classified = lucas.Enrich(classified, year, country)

	summaries := lucas.Summarize(classified, year)

	zap.L().Info("pipeline: processed extract",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("input_rows", len(raw.Records)),
		zap.Int("classified", len(classified)),
		zap.Int("summaries", len(summaries)),
	)

	return classified, summaries, nil
}
