// Package lucas classifies LUCAS survey points into land-use/land-cover
// classes and aggregates classified points into per-country summaries.
// Classification follows the agroforestry scheme of den Herder et al. (2017):
// combinations of primary land cover (LC1), secondary land cover (LC2) and
// the land-management indicator select one of five mutually exclusive
// classes.
package lucas

// Class is a land-use/land-cover class label.
type Class string

// The five LULC classes. Livestock and Arable are the agroforestry classes;
// Forest, Shrubland and Grassland are the non-agroforestry classes.
const (
	ClassLivestock Class = "Livestock"
	ClassArable    Class = "Arable"
	ClassForest    Class = "Forest"
	ClassShrubland Class = "Shrubland"
	ClassGrassland Class = "Grassland"
)

// ClassOrder is the fixed rule-evaluation and reporting order.
var ClassOrder = []Class{ClassLivestock, ClassArable, ClassForest, ClassShrubland, ClassGrassland}

// LAND_MNGT indicator values carried by LUCAS extracts. Any other value
// means the point is outside both agroforestry management contexts.
const (
	LandMngtGrazing = 1.0
	LandMngtArable  = 2.0
)

// SurveyPoint is one standardized survey row. The column standardizer
// guarantees every field is populated before a point reaches this package.
type SurveyPoint struct {
	Lat      float64
	Long     float64
	LC1      string
	LC2      string
	LandMngt float64
	ISO2     string
	Country  string
}

// ClassifiedPoint is a survey point assigned to exactly one class, enriched
// with the survey year and resolved country name.
type ClassifiedPoint struct {
	Lat      float64
	Long     float64
	LC1      string
	LC2      string
	LandMngt float64
	Class    Class
	Year     int
	Country  string
}

// CountrySummary holds per-class counts and percentages for one
// (country, year) pair. When Total is zero every percentage is 0.0.
type CountrySummary struct {
	Country     string
	Year        int
	Counts      map[Class]int
	Percentages map[Class]float64
	Total       int
}
