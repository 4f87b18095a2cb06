package lucas

import "github.com/rotisserie/eris"

// matchClasses evaluates the five class predicates in ClassOrder and returns
// every class the point satisfies. The code sets and the LAND_MNGT
// conditions are designed so that at most one predicate holds; a second
// match means the rule definitions regressed.
func matchClasses(p SurveyPoint, cs CodeSets) []Class {
	var matched []Class

	if cs.LivestockPrimary.Contains(p.LC1) && p.LandMngt == LandMngtGrazing {
		matched = append(matched, ClassLivestock)
	}
	if cs.ArablePrimary.Contains(p.LC1) && cs.ArableSecondary.Contains(p.LC2) && p.LandMngt == LandMngtArable {
		matched = append(matched, ClassArable)
	}
	// Non-agroforestry classes: the point carries a forest/shrub/grass
	// primary cover without an arable overlay in LC2.
	if cs.ForestPrimary.Contains(p.LC1) && !cs.ArableSecondary.Contains(p.LC2) && p.LandMngt == LandMngtArable {
		matched = append(matched, ClassForest)
	}
	if cs.ShrublandPrimary.Contains(p.LC1) && !cs.ArableSecondary.Contains(p.LC2) && p.LandMngt == LandMngtArable {
		matched = append(matched, ClassShrubland)
	}
	if cs.GrasslandPrimary.Contains(p.LC1) && !cs.ArableSecondary.Contains(p.LC2) && p.LandMngt == LandMngtArable {
		matched = append(matched, ClassGrassland)
	}

	return matched
}

// Classify partitions survey points into classified points. Points matching
// no class predicate are excluded; that is steady-state behaviour for
// covers outside the agroforestry-relevant set (urban, water, bare land),
// not an error. A point matching more than one predicate fails the whole
// run loudly rather than being double-counted.
//
// Year and Country on the returned points are zero values; Enrich fills
// them in.
func Classify(points []SurveyPoint, cs CodeSets) ([]ClassifiedPoint, error) {
	classified := make([]ClassifiedPoint, 0, len(points))

	for _, p := range points {
		matched := matchClasses(p, cs)
		if len(matched) == 0 {
			continue
		}
		if len(matched) > 1 {
			return nil, eris.Errorf(
				"lucas: point (%.5f, %.5f) LC1=%s LC2=%s LAND_MNGT=%.1f matches classes %v; rule sets must be disjoint",
				p.Lat, p.Long, p.LC1, p.LC2, p.LandMngt, matched,
			)
		}
		classified = append(classified, ClassifiedPoint{
			Lat:      p.Lat,
			Long:     p.Long,
			LC1:      p.LC1,
			LC2:      p.LC2,
			LandMngt: p.LandMngt,
			Class:    matched[0],
		})
	}

	return classified, nil
}

// Enrich returns a copy of rows with the survey year and country name set
// on every row. Pure, no filtering.
func Enrich(rows []ClassifiedPoint, year int, country string) []ClassifiedPoint {
	enriched := make([]ClassifiedPoint, len(rows))
	for i, r := range rows {
		r.Year = year
		r.Country = country
		enriched[i] = r
	}
	return enriched
}
