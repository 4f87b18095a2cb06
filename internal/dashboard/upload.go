package dashboard

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/pipeline"
	"github.com/inglebright-earth/my-dash-a/internal/schema"
	"github.com/inglebright-earth/my-dash-a/internal/store"
	"github.com/inglebright-earth/my-dash-a/internal/survey"
)

// handleUpload accepts one yearly extract as a multipart file, runs the
// classification pipeline, and appends the outputs to the store. The survey
// year comes from the optional "year" form field, falling back to filename
// extraction. A wave already in the store is rejected with 409 before
// anything is written.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.uploadLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "upload rate limit exceeded")
		return
	}

	maxBytes := s.cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	year, err := uploadYear(r.FormValue("year"), header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	raw, err := survey.ReadBytes(header.Filename, data, s.csvOpts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, summaries, err := pipeline.Process(raw, s.countries, year)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, schema.ErrMissingColumn) && !errors.Is(err, schema.ErrUnrecognizedSchema) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	runID, err := s.store.AppendRun(r.Context(), header.Filename, points, summaries)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateCountryYear) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		zap.L().Error("dashboard: append run", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store run")
		return
	}

	zap.L().Info("dashboard: extract uploaded",
		zap.String("file", header.Filename),
		zap.Int("year", year),
		zap.Int("points", len(points)),
		zap.String("run_id", runID),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"run_id":    runID,
		"year":      year,
		"points":    len(points),
		"summaries": summariesJSON(summaries),
	})
}

func uploadYear(field, filename string) (int, error) {
	if field != "" {
		year, err := strconv.Atoi(field)
		if err != nil {
			return 0, errors.New("form field 'year' must be a 4-digit year")
		}
		return year, nil
	}
	return survey.YearFromFilename(filename)
}
