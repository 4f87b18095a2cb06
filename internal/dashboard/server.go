// Package dashboard serves the interactive LUCAS dashboard: extract upload,
// map and chart views, and CSV export of the accumulated datasets.
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inglebright-earth/my-dash-a/internal/config"
	"github.com/inglebright-earth/my-dash-a/internal/lucas"
	"github.com/inglebright-earth/my-dash-a/internal/schema"
	"github.com/inglebright-earth/my-dash-a/internal/store"
	"github.com/inglebright-earth/my-dash-a/internal/survey"
)

// classColors is the fixed class palette shared by the map and the chart.
var classColors = map[lucas.Class]string{
	lucas.ClassLivestock: "#1b6ba2",
	lucas.ClassArable:    "#b98c1b",
	lucas.ClassGrassland: "#8fbc8f",
	lucas.ClassShrubland: "#a0522d",
	lucas.ClassForest:    "#006400",
}

// Server holds the dashboard's dependencies. The accumulated dataset lives
// behind the store handle; handlers never share mutable state.
type Server struct {
	store         store.Store
	countries     *schema.CountryRef
	cfg           config.ServerConfig
	csvOpts       survey.CSVOptions
	uploadLimiter *rate.Limiter
}

// New builds a dashboard server over the given store and country reference.
func New(st store.Store, countries *schema.CountryRef, cfg config.ServerConfig, csvOpts survey.CSVOptions) *Server {
	perMinute := cfg.UploadPerMinute
	if perMinute <= 0 {
		perMinute = 12
	}
	burst := cfg.UploadBurst
	if burst <= 0 {
		burst = 3
	}
	return &Server{
		store:         st,
		countries:     countries,
		cfg:           cfg,
		csvOpts:       csvOpts,
		uploadLimiter: rate.NewLimiter(rate.Limit(perMinute/60), burst),
	}
}

// Router returns the dashboard's HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/map", s.handleMapPage)
	r.Get("/charts/summary", s.handleSummaryChart)

	r.Post("/api/upload", s.handleUpload)
	r.Get("/api/summaries", s.handleSummaries)
	r.Get("/api/country-years", s.handleCountryYears)
	r.Get("/api/points.geojson", s.handlePointsGeoJSON)

	r.Get("/export/points.csv", s.handleExportPoints)
	r.Get("/export/summaries.csv", s.handleExportSummaries)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.Summaries(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load summaries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load summaries")
		return
	}
	writeJSON(w, http.StatusOK, summariesJSON(summaries))
}

func (s *Server) handleCountryYears(w http.ResponseWriter, r *http.Request) {
	cys, err := s.store.CountryYears(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load country-years", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load country-years")
		return
	}
	if cys == nil {
		cys = []store.CountryYear{}
	}
	writeJSON(w, http.StatusOK, cys)
}

func (s *Server) handleExportPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.store.Points(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load points", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load points")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="lucas_points.csv"`)
	if err := store.WritePointsCSV(w, points); err != nil {
		zap.L().Error("dashboard: export points", zap.Error(err))
	}
}

func (s *Server) handleExportSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.Summaries(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load summaries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load summaries")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="lucas_summaries.csv"`)
	if err := store.WriteSummariesCSV(w, summaries); err != nil {
		zap.L().Error("dashboard: export summaries", zap.Error(err))
	}
}

// summaryRow is the JSON shape of one country-year summary; map keys follow
// the CSV artifact headers.
type summaryRow struct {
	Country     string             `json:"country"`
	Year        int                `json:"year"`
	Counts      map[string]int     `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
	Total       int                `json:"total"`
}

func summariesJSON(summaries []lucas.CountrySummary) []summaryRow {
	rows := make([]summaryRow, 0, len(summaries))
	for _, s := range summaries {
		row := summaryRow{
			Country:     s.Country,
			Year:        s.Year,
			Counts:      make(map[string]int, len(lucas.ClassOrder)),
			Percentages: make(map[string]float64, len(lucas.ClassOrder)),
			Total:       s.Total,
		}
		for _, class := range lucas.ClassOrder {
			row.Counts[string(class)] = s.Counts[class]
			row.Percentages[string(class)] = s.Percentages[class]
		}
		rows = append(rows, row)
	}
	return rows
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
