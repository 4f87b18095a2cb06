package lucas

import "math"

// Summarize reduces classified points to one CountrySummary per distinct
// country present in rows. Counts come from per-class binary indicators and
// every summary carries all five classes, zero-filled where absent.
//
// Output rows appear in first-appearance order of each country in the
// input. That order is documented behaviour of this implementation, not a
// portable guarantee; comparisons should sort by country first.
func Summarize(rows []ClassifiedPoint, year int) []CountrySummary {
	index := make(map[string]int)
	var summaries []CountrySummary

	for _, r := range rows {
		i, ok := index[r.Country]
		if !ok {
			i = len(summaries)
			index[r.Country] = i

			counts := make(map[Class]int, len(ClassOrder))
			for _, class := range ClassOrder {
				counts[class] = 0
			}
			summaries = append(summaries, CountrySummary{
				Country: r.Country,
				Year:    year,
				Counts:  counts,
			})
		}
		summaries[i].Counts[r.Class]++
		summaries[i].Total++
	}

	for i := range summaries {
		summaries[i].Percentages = Percentages(summaries[i].Counts, summaries[i].Total)
	}

	return summaries
}

// Percentages converts per-class counts to percentages of total, rounded to
// one decimal. A zero total yields 0.0 for every class rather than a
// division failure.
func Percentages(counts map[Class]int, total int) map[Class]float64 {
	pct := make(map[Class]float64, len(ClassOrder))
	for _, class := range ClassOrder {
		if total == 0 {
			pct[class] = 0.0
			continue
		}
		pct[class] = round1(float64(counts[class]) / float64(total) * 100)
	}
	return pct
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
