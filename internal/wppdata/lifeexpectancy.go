package wppdata

import (
	"sort"
	"time"

	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// LifeExpectancyRow is a single published row: for a given
// (region, sex, 5-year period), remaining life expectancy at a set of
// published ages (0, 1, 5, 10, 15, ..., 125).
type LifeExpectancyRow struct {
	Region      Region
	Sex         Sex
	PeriodBegin time.Time // period start (e.g. 2020-07-01 for the 2020-2025 period)
	PeriodEnd   time.Time
	Ages        []int     // published age knots, ascending
	Values      []float64 // remaining life expectancy at each age, same order
}

// LifeExpectancyTable is the Life-Expectancy Table (C2): one row per
// (region, sex, period).
type LifeExpectancyTable struct {
	rows []LifeExpectancyRow
}

// NewLifeExpectancyTable builds an empty table; loaders append rows.
func NewLifeExpectancyTable() *LifeExpectancyTable {
	return &LifeExpectancyTable{}
}

// Add appends a row, keeping the internal slice sorted by period start
// so that Periods returns rows in period order for NearestPeriods'
// binary search.
func (t *LifeExpectancyTable) Add(row LifeExpectancyRow) {
	row.Region = normalizeRegion(row.Region)
	t.rows = append(t.rows, row)
	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].PeriodBegin.Before(t.rows[j].PeriodBegin) })
}

// Periods returns every row for the given (region, sex) in ascending
// period order.
func (t *LifeExpectancyTable) Periods(region Region, sex Sex) []LifeExpectancyRow {
	region = normalizeRegion(region)
	var out []LifeExpectancyRow
	for _, r := range t.rows {
		if r.Region == region && r.Sex == sex {
			out = append(out, r)
		}
	}
	return out
}

// NearestPeriods returns the period rows whose midpoints most closely
// bracket the given date: the row containing the date (or the nearest
// row when none contains it) with one row on each side. At either end
// of the loaded periods the window shifts inward, so it then holds two
// rows on one side instead. Never more than three rows are returned,
// matching the 3-point quadratic fit used by remaining-life-expectancy
// calculations; fewer are returned only when fewer are loaded.
func (t *LifeExpectancyTable) NearestPeriods(region Region, sex Sex, date time.Time) ([]LifeExpectancyRow, error) {
	periods := t.Periods(region, sex)
	if len(periods) == 0 {
		return nil, wpperr.New(wpperr.DataMissing, "region", string(region)).WithRange("loaded life-expectancy regions")
	}
	idx := sort.Search(len(periods), func(i int) bool { return !periods[i].PeriodBegin.Before(date) })
	// idx is the first period whose begin is >= date; back up one if
	// the previous period actually contains the date.
	if idx > 0 && !date.Before(periods[idx-1].PeriodBegin) && date.Before(periods[idx-1].PeriodEnd) {
		idx--
	} else if idx == len(periods) {
		idx = len(periods) - 1
	}

	lo := idx - 1
	hi := idx + 1
	if lo < 0 {
		lo = 0
		hi = minInt(2, len(periods)-1)
	}
	if hi > len(periods)-1 {
		hi = len(periods) - 1
		lo = maxInt(0, hi-2)
	}
	return periods[lo : hi+1], nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
