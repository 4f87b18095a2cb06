// Package schema normalizes the historical LUCAS extract schema variants to
// the canonical column set and resolves ISO2 codes to country names.
package schema

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// Canonical column names the classifier depends on.
const (
	ColLat      = "LAT"
	ColLong     = "LONG"
	ColLC1      = "LC1"
	ColLC2      = "LC2"
	ColLandMngt = "LAND_MNGT"
	ColISO2     = "ISO2"
)

// requiredColumns must all be present after standardization.
var requiredColumns = []string{ColLat, ColLong, ColLC1, ColLC2, ColLandMngt, ColISO2}

// Sentinel errors for input rejection. Both mean the file must be rejected
// before anything reaches the store.
var (
	ErrUnrecognizedSchema = eris.New("schema: unrecognized extract schema")
	ErrMissingColumn      = eris.New("schema: missing required column")
)

// RawTable is an undecoded extract: a header row plus string records.
type RawTable struct {
	Header  []string
	Records [][]string
}

// Variant identifies one of the known LUCAS extract schema generations.
// Eurostat changed column naming between survey waves; each variant has an
// explicit mapping to the canonical schema instead of ad-hoc per-column
// presence checks.
type Variant int

const (
	// VariantGrazing: GRAZING and NUTS0 columns (2009/2012 extracts).
	VariantGrazing Variant = iota + 1
	// VariantSurveyPrefixed: SURVEY_GRAZING plus SURVEY_/POINT_ column
	// prefixes (2015 onwards).
	VariantSurveyPrefixed
	// VariantTheoretical: TH_LAT/TH_LONG theoretical point coordinates.
	VariantTheoretical
)

func (v Variant) String() string {
	switch v {
	case VariantGrazing:
		return "grazing"
	case VariantSurveyPrefixed:
		return "survey-prefixed"
	case VariantTheoretical:
		return "theoretical"
	default:
		return "unknown"
	}
}

// DetectVariant inspects a header and returns the matching schema variant,
// or ErrUnrecognizedSchema when no variant's marker column is present.
func DetectVariant(header []string) (Variant, error) {
	has := make(map[string]bool, len(header))
	for _, col := range header {
		has[strings.ToUpper(strings.TrimSpace(col))] = true
	}

	switch {
	case has["GRAZING"]:
		return VariantGrazing, nil
	case has["SURVEY_GRAZING"]:
		return VariantSurveyPrefixed, nil
	case has["TH_LAT"]:
		return VariantTheoretical, nil
	}
	return 0, eris.Wrapf(ErrUnrecognizedSchema, "header %v", header)
}

// canonicalName maps one raw column name to its canonical equivalent under
// the given variant. Columns already canonical pass through unchanged.
func canonicalName(v Variant, raw string) string {
	col := strings.ToUpper(strings.TrimSpace(raw))

	switch v {
	case VariantGrazing:
		switch col {
		case "GRAZING":
			return ColLandMngt
		case "NUTS0":
			return ColISO2
		}
	case VariantSurveyPrefixed:
		if col == "SURVEY_GRAZING" {
			return ColLandMngt
		}
		col = strings.TrimPrefix(col, "SURVEY_")
		col = strings.TrimPrefix(col, "POINT_")
		if col == "NUTS0" {
			return ColISO2
		}
	case VariantTheoretical:
		switch col {
		case "TH_LAT":
			return ColLat
		case "TH_LONG":
			return ColLong
		case "NUTS0":
			return ColISO2
		}
	}
	return col
}

// Standardize detects the extract's schema variant, maps its columns to the
// canonical set, validates the classifier's required columns, and resolves
// ISO2 codes to country names via the reference table.
//
// Rows with an unparsable coordinate or management flag, or an ISO2 code
// absent from the reference, are excluded here so the core only ever sees
// fully populated points. Column validation failures reject the whole file.
func Standardize(raw RawTable, countries *CountryRef) ([]lucas.SurveyPoint, error) {
	variant, err := DetectVariant(raw.Header)
	if err != nil {
		return nil, err
	}

	colIdx := make(map[string]int, len(raw.Header))
	for i, col := range raw.Header {
		colIdx[canonicalName(variant, col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Wrapf(ErrMissingColumn, "%s (variant %s)", col, variant)
		}
	}

	field := func(rec []string, col string) string {
		i := colIdx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	points := make([]lucas.SurveyPoint, 0, len(raw.Records))
	var dropped int
	for _, rec := range raw.Records {
		lat, latErr := strconv.ParseFloat(field(rec, ColLat), 64)
		long, longErr := strconv.ParseFloat(field(rec, ColLong), 64)
		mngt, mngtErr := strconv.ParseFloat(field(rec, ColLandMngt), 64)
		lc1 := field(rec, ColLC1)
		iso2 := normalizeISO2(field(rec, ColISO2))
		country, known := countries.Name(iso2)

		if latErr != nil || longErr != nil || mngtErr != nil || lc1 == "" || !known {
			dropped++
			continue
		}

		points = append(points, lucas.SurveyPoint{
			Lat:      lat,
			Long:     long,
			LC1:      lc1,
			LC2:      field(rec, ColLC2),
			LandMngt: mngt,
			ISO2:     iso2,
			Country:  country,
		})
	}

	if dropped > 0 {
		zap.L().Debug("schema: dropped incomplete rows",
			zap.String("variant", variant.String()),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(points)),
		)
	}

	return points, nil
}
