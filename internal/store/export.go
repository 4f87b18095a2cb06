package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// Column headers of the two durable CSV artifacts. Percentage headers keep
// the "Class %" convention so exports line up with the dashboard tables.
var (
	pointsHeader = []string{"LAT", "LONG", "LC1", "LC2", "LAND_MNGT", "CLASS", "Year", "Country"}

	summariesHeader = []string{
		"Country", "Year",
		"Livestock", "Arable", "Forest", "Shrubland", "Grassland",
		"Livestock %", "Arable %", "Forest %", "Shrubland %", "Grassland %",
		"Total",
	}
)

// WritePointsCSV writes the accumulated classified points as CSV.
func WritePointsCSV(w io.Writer, points []lucas.ClassifiedPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pointsHeader); err != nil {
		return eris.Wrap(err, "store: write points header")
	}
	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Long, 'f', -1, 64),
			p.LC1,
			p.LC2,
			fmt.Sprintf("%.1f", p.LandMngt),
			string(p.Class),
			strconv.Itoa(p.Year),
			p.Country,
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "store: write point row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "store: flush points csv")
}

// WriteSummariesCSV writes the accumulated country summaries as CSV.
func WriteSummariesCSV(w io.Writer, summaries []lucas.CountrySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summariesHeader); err != nil {
		return eris.Wrap(err, "store: write summaries header")
	}
	for _, s := range summaries {
		rec := []string{s.Country, strconv.Itoa(s.Year)}
		for _, class := range lucas.ClassOrder {
			rec = append(rec, strconv.Itoa(s.Counts[class]))
		}
		for _, class := range lucas.ClassOrder {
			rec = append(rec, fmt.Sprintf("%.1f", s.Percentages[class]))
		}
		rec = append(rec, strconv.Itoa(s.Total))
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "store: write summary row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "store: flush summaries csv")
}
