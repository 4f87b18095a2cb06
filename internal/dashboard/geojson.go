package dashboard

import (
	"fmt"
	"net/http"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// handlePointsGeoJSON serves the accumulated classified points as a GeoJSON
// FeatureCollection for the map page. An optional repeated "country_year"
// query parameter (e.g. "Spain 2012") restricts the output.
func (s *Server) handlePointsGeoJSON(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.Points(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load points", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load points")
		return
	}

	wanted := make(map[string]bool)
	for _, cy := range r.URL.Query()["country_year"] {
		wanted[cy] = true
	}

	features := make([]*geojson.Feature, 0, len(points))
	for _, p := range points {
		label := fmt.Sprintf("%s %d", p.Country, p.Year)
		if len(wanted) > 0 && !wanted[label] {
			continue
		}
		features = append(features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Long, p.Lat}),
			Properties: map[string]any{
				"class":       string(p.Class),
				"color":       classColors[p.Class],
				"lc1":         p.LC1,
				"lc2":         p.LC2,
				"landMngt":    p.LandMngt,
				"country":     p.Country,
				"year":        p.Year,
				"countryYear": label,
			},
		})
	}

	fc := geojson.FeatureCollection{Features: features}
	data, err := fc.MarshalJSON()
	if err != nil {
		zap.L().Error("dashboard: marshal geojson", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to encode points")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}
