package schema

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CountryRef maps ISO2 codes to country names.
type CountryRef struct {
	names map[string]string
}

// Reference-table overrides: LUCAS extracts code the United Kingdom as UK
// rather than ISO's GB, and the ISO long-form name is unwieldy on charts.
const (
	ukLongForm  = "United Kingdom of Great Britain and Northern Ireland"
	ukShortForm = "Great Britain"
)

// NewCountryRef builds a reference from an ISO2 -> name mapping, applying
// the UK overrides.
func NewCountryRef(names map[string]string) *CountryRef {
	ref := &CountryRef{names: make(map[string]string, len(names))}
	for iso2, name := range names {
		iso2 = normalizeISO2(iso2)
		if iso2 == "GB" {
			iso2 = "UK"
		}
		if name == ukLongForm {
			name = ukShortForm
		}
		ref.names[iso2] = name
	}
	return ref
}

// LoadCountryRef reads a country-code reference CSV. The file must carry
// "alpha-2" and "name" columns; other columns are ignored.
func LoadCountryRef(path string) (*CountryRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "schema: open country reference")
	}
	defer f.Close()
	return ReadCountryRef(f)
}

// ReadCountryRef parses a country-code reference CSV from r.
func ReadCountryRef(r io.Reader) (*CountryRef, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "schema: read country reference header")
	}

	iso2Idx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "alpha-2":
			iso2Idx = i
		case "name":
			nameIdx = i
		}
	}
	if iso2Idx < 0 || nameIdx < 0 {
		return nil, eris.New("schema: country reference needs alpha-2 and name columns")
	}

	names := make(map[string]string)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "schema: read country reference row")
		}
		if iso2Idx >= len(rec) || nameIdx >= len(rec) {
			continue
		}
		names[strings.TrimSpace(rec[iso2Idx])] = strings.TrimSpace(rec[nameIdx])
	}

	return NewCountryRef(names), nil
}

// Name resolves an ISO2 code to its country name.
func (c *CountryRef) Name(iso2 string) (string, bool) {
	name, ok := c.names[normalizeISO2(iso2)]
	return name, ok
}

// Len returns the number of reference entries.
func (c *CountryRef) Len() int { return len(c.names) }

func normalizeISO2(iso2 string) string {
	return strings.ToUpper(strings.TrimSpace(iso2))
}
