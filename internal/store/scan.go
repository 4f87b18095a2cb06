package store

import (
	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// rowScanner is the subset of database/sql and pgx row iteration both
// drivers satisfy, so the scan helpers serve either store.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPoints(rows rowScanner) ([]lucas.ClassifiedPoint, error) {
	var out []lucas.ClassifiedPoint
	for rows.Next() {
		var p lucas.ClassifiedPoint
		var class string
		if err := rows.Scan(&p.Lat, &p.Long, &p.LC1, &p.LC2, &p.LandMngt, &class, &p.Year, &p.Country); err != nil {
			return nil, eris.Wrap(err, "store: scan point")
		}
		p.Class = lucas.Class(class)
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate points")
}

func scanSummaries(rows rowScanner) ([]lucas.CountrySummary, error) {
	var out []lucas.CountrySummary
	for rows.Next() {
		s := lucas.CountrySummary{
			Counts:      make(map[lucas.Class]int, len(lucas.ClassOrder)),
			Percentages: make(map[lucas.Class]float64, len(lucas.ClassOrder)),
		}
		var counts [5]int
		var pcts [5]float64
		if err := rows.Scan(&s.Country, &s.Year,
			&counts[0], &counts[1], &counts[2], &counts[3], &counts[4],
			&pcts[0], &pcts[1], &pcts[2], &pcts[3], &pcts[4],
			&s.Total,
		); err != nil {
			return nil, eris.Wrap(err, "store: scan summary")
		}
		for i, class := range lucas.ClassOrder {
			s.Counts[class] = counts[i]
			s.Percentages[class] = pcts[i]
		}
		out = append(out, s)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate summaries")
}
