package survey

import (
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
)

// Survey years outside this window are treated as spurious digit runs
// (e.g. the export-date stamp in "ES_2012_20200213.csv").
const (
	minSurveyYear = 2006 // first LUCAS wave
	maxSurveyYear = 2100
)

var digitRun = regexp.MustCompile(`\d+`)

// YearFromFilename extracts the 4-digit survey year from an extract
// filename. Only standalone 4-digit runs within the plausible survey-year
// window count as candidates, which keeps 8-digit export-date stamps out.
// Zero candidates or conflicting candidates are an error; the caller should
// then require an explicit year instead of guessing.
func YearFromFilename(name string) (int, error) {
	var year int
	for _, run := range digitRun.FindAllString(name, -1) {
		if len(run) != 4 {
			continue
		}
		v, err := strconv.Atoi(run)
		if err != nil || v < minSurveyYear || v > maxSurveyYear {
			continue
		}
		if year != 0 && year != v {
			return 0, eris.Errorf("survey: ambiguous year in filename %q (%d vs %d)", name, year, v)
		}
		year = v
	}
	if year == 0 {
		return 0, eris.Errorf("survey: no 4-digit survey year in filename %q", name)
	}
	return year, nil
}
