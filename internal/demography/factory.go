// Package demography implements the population query primitives (C5)
// and demographic algorithms (C6): age/date-of-birth population
// lookups, world population rank, rank-to-date inversion, remaining
// and total life expectancy, total population, population count, and
// mortality distribution.
package demography

import (
	"github.com/worldpop-io/wpp-engine/internal/daily"
	"github.com/worldpop-io/wpp-engine/internal/wppdata"
	"github.com/worldpop-io/wpp-engine/pkg/calendar"
	"github.com/worldpop-io/wpp-engine/pkg/spline"
	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// InterpolatorFactory builds a daily.Interpolator for a (region, sex)
// pair from the loaded annual population table, by fitting a bicubic
// surface over (age-in-days x date-in-epoch-days) knots. It is the
// sole implementer of daily.Factory, referenced by the cache only
// through that interface — see DESIGN.md for why this replaces the
// original datastore's table-builder registration callback.
type InterpolatorFactory struct {
	Table *wppdata.PopulationTable
}

// bicubicInterpolator adapts a *spline.Bicubic, built over population
// density (people per day), to the daily.Interpolator contract: a
// point evaluation returns an instantaneous density at (age, date),
// and Integrate returns a population count (density integrated over
// both age-days and date-days).
type bicubicInterpolator struct {
	surface *spline.Bicubic
}

func (b bicubicInterpolator) Evaluate(ageDays, dateDays float64) (float64, error) {
	return b.surface.Eval(ageDays, dateDays)
}

func (b bicubicInterpolator) Integrate(ageFromDays, ageToDays, dateFromDays, dateToDays float64) (float64, error) {
	return b.surface.Integrate(ageFromDays, ageToDays, dateFromDays, dateToDays)
}

// Build constructs the bicubic surface for (region, sex). Row knots
// are age-in-days, bracketed by a low boundary knot at
// ageMin*DaysPerYear and a high boundary knot at
// (ageMax+1)*DaysPerYear-1, each duplicating its nearest real row (the
// first and last rows are padded, matching the original model's
// edge-density extrapolation so the surface stays defined along both
// edges); column knots are the epoch-day offset of July 1 for every
// loaded enumeration year.
func (f *InterpolatorFactory) Build(region wppdata.Region, sex wppdata.Sex) (daily.Interpolator, error) {
	ageMin, ageMax := f.Table.AgeRange()
	yearMin, yearMax := f.Table.YearRange()
	years := yearRange(yearMin, yearMax)

	cols := make([]float64, 0, len(years))
	for _, y := range years {
		cols = append(cols, float64(calendar.DecimalYearToDays(y, 0, calendar.DefaultAnchorMonth, calendar.DefaultAnchorDay)))
	}

	rows := make([]float64, 0, ageMax-ageMin+3)
	rows = append(rows, float64(ageMin)*calendar.DaysPerYear)
	for a := ageMin; a <= ageMax; a++ {
		rows = append(rows, (float64(a)+0.5)*calendar.DaysPerYear)
	}
	rows = append(rows, (float64(ageMax)+1)*calendar.DaysPerYear-1)

	densities := make([][]float64, len(years))
	for ci, y := range years {
		col, err := f.Table.AgeColumn(y, region, sex)
		if err != nil {
			return nil, err
		}
		densities[ci] = col
	}

	z := make([][]float64, len(rows))
	z[0] = make([]float64, len(cols))
	z[len(rows)-1] = make([]float64, len(cols))
	for ci := range cols {
		z[0][ci] = densities[ci][0] / calendar.DaysPerYear
		z[len(rows)-1][ci] = densities[ci][ageMax-ageMin] / calendar.DaysPerYear
	}
	for ai := ageMin; ai <= ageMax; ai++ {
		rowVals := make([]float64, len(cols))
		for ci := range cols {
			rowVals[ci] = densities[ci][ai-ageMin] / calendar.DaysPerYear
		}
		z[ai-ageMin+1] = rowVals
	}

	surface, err := spline.NewBicubic(rows, cols, z)
	if err != nil {
		return nil, wpperr.New(wpperr.Internal, "interpolator_build", string(region)).Wrap(err)
	}
	return bicubicInterpolator{surface: surface}, nil
}

func yearRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		out = append(out, y)
	}
	return out
}
