package wppdata

import (
	"sort"

	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
	"gonum.org/v1/gonum/mat"
)

// PopulationTable is the Annual Population Table (C1): for every
// (region, sex), a dense age x year grid of head counts, as published
// by the July-1 enumeration. Values are stored at full scale (source
// CSVs carry thousands; loaders multiply by 1000 on ingest).
type PopulationTable struct {
	ageMin, ageMax   int
	yearMin, yearMax int
	grids            map[Region]map[Sex]*mat.Dense // [age-ageMin][year-yearMin]
}

// NewPopulationTable builds an (initially empty) table over the given
// age and year ranges; loaders populate it row by row via Set.
func NewPopulationTable(ageMin, ageMax, yearMin, yearMax int) *PopulationTable {
	return &PopulationTable{
		ageMin: ageMin, ageMax: ageMax,
		yearMin: yearMin, yearMax: yearMax,
		grids: make(map[Region]map[Sex]*mat.Dense),
	}
}

func (t *PopulationTable) ensure(region Region, sex Sex) *mat.Dense {
	region = normalizeRegion(region)
	bySex, ok := t.grids[region]
	if !ok {
		bySex = make(map[Sex]*mat.Dense)
		t.grids[region] = bySex
	}
	grid, ok := bySex[sex]
	if !ok {
		grid = mat.NewDense(t.ageMax-t.ageMin+1, t.yearMax-t.yearMin+1, nil)
		bySex[sex] = grid
	}
	return grid
}

// Set records the population count for (region, sex, age, year). Age
// outside [ageMin, ageMax] or year outside [yearMin, yearMax] is a
// loader bug, not a runtime condition — it panics immediately.
func (t *PopulationTable) Set(region Region, sex Sex, age, year int, count float64) {
	grid := t.ensure(region, sex)
	grid.Set(age-t.ageMin, year-t.yearMin, count)
}

// Regions returns the known region set in a stable, sorted order.
func (t *PopulationTable) Regions() []Region {
	out := make([]Region, 0, len(t.grids))
	for r := range t.grids {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AgeRange returns the inclusive [min, max] age knots carried by the table.
func (t *PopulationTable) AgeRange() (int, int) { return t.ageMin, t.ageMax }

// YearRange returns the inclusive [min, max] enumeration years carried
// by the table.
func (t *PopulationTable) YearRange() (int, int) { return t.yearMin, t.yearMax }

// PopAge returns the population of the given age, region, and sex in
// the given enumeration year. An age outside the table's age range
// returns 0 (nobody of that age exists, not a data error); a year
// outside the table's year range is an OutOfRange error, a region with
// no loaded data is an InvalidInput error, and a sex with no loaded
// grid for the region is a DataMissing error.
func (t *PopulationTable) PopAge(year int, region Region, sex Sex, age int) (float64, error) {
	if age < t.ageMin || age > t.ageMax {
		return 0, nil
	}
	if year < t.yearMin || year > t.yearMax {
		return 0, wpperr.New(wpperr.OutOfRange, "year", itoa(year)).
			WithRange(rangeStr(t.yearMin, t.yearMax))
	}
	region = normalizeRegion(region)
	bySex, ok := t.grids[region]
	if !ok {
		return 0, wpperr.New(wpperr.InvalidInput, "region", string(region))
	}
	grid, ok := bySex[sex]
	if !ok {
		return 0, wpperr.New(wpperr.DataMissing, "sex", sex.String())
	}
	return grid.At(age-t.ageMin, year-t.yearMin), nil
}

// AgeColumn returns the full age-indexed population column for a
// given (region, sex, year), in ascending age order — the raw input
// to the C4 per-column cubic spline fit.
func (t *PopulationTable) AgeColumn(year int, region Region, sex Sex) ([]float64, error) {
	if year < t.yearMin || year > t.yearMax {
		return nil, wpperr.New(wpperr.OutOfRange, "year", itoa(year)).WithRange(rangeStr(t.yearMin, t.yearMax))
	}
	region = normalizeRegion(region)
	bySex, ok := t.grids[region]
	if !ok {
		return nil, wpperr.New(wpperr.InvalidInput, "region", string(region))
	}
	grid, ok := bySex[sex]
	if !ok {
		return nil, wpperr.New(wpperr.DataMissing, "sex", sex.String())
	}
	col := year - t.yearMin
	out := make([]float64, t.ageMax-t.ageMin+1)
	for a := range out {
		out[a] = grid.At(a, col)
	}
	return out, nil
}

// CheckInvariants verifies All == Male + Female for every loaded cell,
// within the rounding tolerance of source data recorded in thousands
// and scaled to whole persons. Regions that lack any of the three
// sexes are not checked. Missing cells are not detected: grids are
// dense by construction and a cell never Set reads as 0.
func (t *PopulationTable) CheckInvariants() error {
	const eps = 1000
	for region, bySex := range t.grids {
		male, hasMale := bySex[Male]
		female, hasFemale := bySex[Female]
		both, hasBoth := bySex[Both]
		if !hasBoth || !hasMale || !hasFemale {
			continue // a region loaded with only a subset of sexes is valid (e.g. some CSVs carry Both only)
		}
		rows, cols := both.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				sum := male.At(r, c) + female.At(r, c)
				if diff := sum - both.At(r, c); diff > eps || diff < -eps {
					return wpperr.New(wpperr.Internal, "population_invariant", string(region)).
						WithRange("All == Male + Female")
				}
			}
		}
	}
	return nil
}
