package survey

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

// ReadSHP parses a LUCAS point shapefile into a RawTable. Attribute fields
// come from the DBF; if the attributes carry no coordinate columns, LAT and
// LONG are appended from each record's point geometry (EPSG:4326 extracts
// store plain lon/lat).
func ReadSHP(path string) (schema.RawTable, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return schema.RawTable{}, eris.Wrapf(err, "survey: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	header := make([]string, 0, len(fields)+2)
	hasCoords := false
	for _, f := range fields {
		name := strings.TrimSpace(strings.TrimRight(f.String(), "\x00"))
		header = append(header, name)
		upper := strings.ToUpper(name)
		if upper == "LAT" || upper == "TH_LAT" || upper == "POINT_LAT" {
			hasCoords = true
		}
	}
	if !hasCoords {
		header = append(header, "LAT", "LONG")
	}

	var records [][]string
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		rec := make([]string, 0, len(header))
		for i := range fields {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			rec = append(rec, val)
		}

		if !hasCoords {
			point, ok := shape.(*shp.Point)
			if !ok || point == nil {
				skipped++
				continue
			}
			rec = append(rec,
				strconv.FormatFloat(point.Y, 'f', -1, 64),
				strconv.FormatFloat(point.X, 'f', -1, 64),
			)
		}

		records = append(records, rec)
	}

	if skipped > 0 {
		zap.L().Debug("survey: skipped non-point shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return schema.RawTable{Header: header, Records: records}, nil
}
