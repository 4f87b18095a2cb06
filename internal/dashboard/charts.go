package dashboard

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/lucas"
)

// handleSummaryChart renders the stacked percentage bar chart of all
// accumulated country-year summaries as a standalone HTML page.
func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.Summaries(r.Context())
	if err != nil {
		zap.L().Error("dashboard: load summaries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load summaries")
		return
	}

	sort.Slice(summaries, func(i, j int) bool {
		return countryYearLabel(summaries[i]) < countryYearLabel(summaries[j])
	})

	labels := make([]string, len(summaries))
	for i, sum := range summaries {
		labels[i] = countryYearLabel(sum)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "LUCAS Survey Point Classification",
			Width:     "1100px",
			Height:    "620px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Landuse & Landcover Classification Per Country by Year",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Percentage %", Max: 100}),
	)
	bar.SetXAxis(labels)

	for _, class := range lucas.ClassOrder {
		data := make([]opts.BarData, len(summaries))
		for i, sum := range summaries {
			data[i] = opts.BarData{Value: sum.Percentages[class]}
		}
		bar.AddSeries(string(class), data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "pct"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: classColors[class]}),
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(w); err != nil {
		zap.L().Error("dashboard: render summary chart", zap.Error(err))
	}
}

func countryYearLabel(s lucas.CountrySummary) string {
	return fmt.Sprintf("%s %d", s.Country, s.Year)
}
