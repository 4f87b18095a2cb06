package lucas

import "fmt"

// CodeSet is a membership set of LUCAS land-cover codes.
type CodeSet map[string]struct{}

// Contains reports whether code is a member of the set.
func (s CodeSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

func newCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// codeRange generates prefixed numeric codes, inclusive on both ends:
// codeRange("B", 71, 84) -> B71..B84.
func codeRange(prefix string, from, to int) []string {
	codes := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		codes = append(codes, fmt.Sprintf("%s%d", prefix, n))
	}
	return codes
}

// CodeSets holds the land-cover code groups used as classification
// predicates. Primary sets match LC1; the shared arable secondary set
// matches LC2 and doubles as the agroforestry-overlay exclusion for the
// non-agroforestry classes.
type CodeSets struct {
	LivestockPrimary CodeSet
	ArablePrimary    CodeSet
	ArableSecondary  CodeSet
	ForestPrimary    CodeSet
	ShrublandPrimary CodeSet
	GrasslandPrimary CodeSet
}

// ClassCodeSets returns the code groups of the den Herder et al. (2017)
// classification scheme. Pure lookup data, no error conditions.
func ClassCodeSets() CodeSets {
	// Livestock covers woody crops (B71-B84), woodlands (C10-C33) and the
	// sparse-tree shrubland/grassland covers D10 and E10; the grazing flag
	// distinguishes livestock use.
	livestock := append(codeRange("B", 71, 84), codeRange("C", 10, 33)...)
	livestock = append(livestock, "D10", "E10")

	// Arable shares the livestock primary codes minus the E10/D10 tail,
	// with D10 retained.
	arablePrimary := append(codeRange("B", 71, 84), codeRange("C", 10, 33)...)
	arablePrimary = append(arablePrimary, "D10")

	return CodeSets{
		LivestockPrimary: newCodeSet(livestock...),
		ArablePrimary:    newCodeSet(arablePrimary...),
		ArableSecondary:  newCodeSet(codeRange("B", 11, 54)...),
		ForestPrimary:    newCodeSet("C10", "C21", "C22", "C23", "C31", "C32", "C33"),
		ShrublandPrimary: newCodeSet("D10", "D20"),
		GrasslandPrimary: newCodeSet("E10", "E20", "E30"),
	}
}
