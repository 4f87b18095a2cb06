// Package survey reads raw LUCAS extracts from CSV, XLSX, and shapefile
// sources and resolves the survey year from extract filenames.
package survey

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

// CSVOptions configures the extract CSV reader.
type CSVOptions struct {
	Delimiter rune // default ','
	// Latin1 decodes ISO-8859-1 input; the older Eurostat extracts predate
	// UTF-8 and carry accented site names in Latin-1.
	Latin1 bool
}

// ReadCSV parses a raw extract CSV into a RawTable. The first row is the
// header; records may have variable field counts (trailing empty columns
// are common in hand-edited extracts).
func ReadCSV(r io.Reader, opts CSVOptions) (schema.RawTable, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return schema.RawTable{}, eris.New("survey: empty csv")
	}
	if err != nil {
		return schema.RawTable{}, eris.Wrap(err, "survey: read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return schema.RawTable{}, eris.Wrap(err, "survey: read csv row")
		}
		records = append(records, rec)
	}

	return schema.RawTable{Header: header, Records: records}, nil
}
