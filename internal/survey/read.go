package survey

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

// Read decodes an on-disk extract by extension: .csv, .xlsx, or .shp (with
// its sidecar .dbf next to it).
func Read(path string, opts CSVOptions) (schema.RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return schema.RawTable{}, eris.Wrapf(err, "survey: open %s", path)
		}
		defer f.Close()
		return ReadCSV(f, opts)
	case ".xlsx":
		data, err := os.ReadFile(path)
		if err != nil {
			return schema.RawTable{}, eris.Wrapf(err, "survey: read %s", path)
		}
		return ReadXLSX(data)
	case ".shp":
		return ReadSHP(path)
	default:
		return schema.RawTable{}, eris.Errorf("survey: unsupported extract format %q", filepath.Ext(path))
	}
}

// ReadBytes decodes an uploaded extract from memory. Shapefiles are not
// accepted here: they need the sidecar .dbf, so they only make sense as
// on-disk inputs via Read.
func ReadBytes(filename string, data []byte, opts CSVOptions) (schema.RawTable, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(bytes.NewReader(data), opts)
	case ".xlsx":
		return ReadXLSX(data)
	default:
		return schema.RawTable{}, eris.Errorf("survey: unsupported upload format %q", filepath.Ext(filename))
	}
}
