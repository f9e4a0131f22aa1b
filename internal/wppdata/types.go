// Package wppdata holds the three loaded UN World Population Prospects
// tables — annual population (C1), life expectancy (C2), and survival
// ratio (C3) — plus the CSV loaders that build them.
package wppdata

import "github.com/worldpop-io/wpp-engine/pkg/wpperr"

// Sex enumerates the two tracked sexes plus the combined "Both" total
// carried by the population table.
type Sex int

const (
	Male Sex = iota
	Female
	Both
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// ParseSex accepts the single-letter codes used by the source CSVs
// ("M", "F", "B"/"T") case-insensitively, plus the English words.
func ParseSex(s string) (Sex, error) {
	switch s {
	case "M", "m", "male", "Male":
		return Male, nil
	case "F", "f", "female", "Female":
		return Female, nil
	case "B", "b", "T", "t", "both", "total", "Both", "Total":
		return Both, nil
	default:
		return 0, wpperr.New(wpperr.InvalidInput, "sex", s).WithRange(`"M", "F", or "Both"`)
	}
}

// Region identifies a UN-defined country, region, or continent by its
// canonical name as carried in the source tables. The valid set is
// whatever a loaded table actually contains — no fixed enumeration is
// hardcoded, since the WPP region list changes across revisions.
type Region string

// aliases renames source-table labels that changed between WPP
// revisions; Australia/New Zealand in particular was split out of
// "Oceania" under a new label in later revisions.
var aliases = map[Region]Region{
	"Australia/New Zealand": "Australia and New Zealand",
}

func normalizeRegion(r Region) Region {
	if canon, ok := aliases[r]; ok {
		return canon
	}
	return r
}
