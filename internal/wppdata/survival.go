package wppdata

import (
	"sort"
	"time"

	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// SurvivalRow is a published 5-year cohort survival ratio row: the
// probability of surviving from one 5-year age bracket to the next
// over the period [PeriodBegin, PeriodEnd).
type SurvivalRow struct {
	Region      Region
	Sex         Sex
	PeriodBegin time.Time
	PeriodEnd   time.Time
	AgeBrackets []int     // lower bound of each 5-year bracket, ascending
	Ratios      []float64 // survival ratio for each bracket, same order
}

// SurvivalTable is the Survival-Ratio Table (C3).
type SurvivalTable struct {
	rows []SurvivalRow
}

// NewSurvivalTable builds an empty table; loaders append rows.
func NewSurvivalTable() *SurvivalTable {
	return &SurvivalTable{}
}

// Add appends a row, keeping rows sorted by period start.
func (t *SurvivalTable) Add(row SurvivalRow) {
	row.Region = normalizeRegion(row.Region)
	t.rows = append(t.rows, row)
	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].PeriodBegin.Before(t.rows[j].PeriodBegin) })
}

// Periods returns every row for (region, sex) in ascending period order.
func (t *SurvivalTable) Periods(region Region, sex Sex) []SurvivalRow {
	region = normalizeRegion(region)
	var out []SurvivalRow
	for _, r := range t.rows {
		if r.Region == region && r.Sex == sex {
			out = append(out, r)
		}
	}
	return out
}

// RatioAt returns the survival ratio for the bracket containing age,
// for the period that contains date. DataMissing if no period or
// bracket matches.
func (t *SurvivalTable) RatioAt(region Region, sex Sex, date time.Time, age int) (float64, error) {
	periods := t.Periods(region, sex)
	for _, p := range periods {
		if (date.Equal(p.PeriodBegin) || date.After(p.PeriodBegin)) && date.Before(p.PeriodEnd) {
			bracket := (age / 5) * 5
			for i, b := range p.AgeBrackets {
				if b == bracket {
					return p.Ratios[i], nil
				}
			}
		}
	}
	return 0, wpperr.New(wpperr.DataMissing, "survival_ratio", string(region)).WithRange("loaded periods/brackets")
}

// ThreeCohortDiagonal returns, for a synthetic cohort aged startAge in
// the first of three consecutive periods straddling refDate, the
// survival ratio each period applies to the age bracket that cohort
// occupies during that period — the diagonal walk dod.py's dist_odata
// performs across pr0/pr1/pr2.
func (t *SurvivalTable) ThreeCohortDiagonal(region Region, sex Sex, refDate time.Time, startAge int) ([3]time.Time, [3]float64, error) {
	periods := t.Periods(region, sex)
	n := len(periods)
	if n == 0 {
		return [3]time.Time{}, [3]float64{}, wpperr.New(wpperr.DataMissing, "region", string(region))
	}
	idx := sort.Search(n, func(i int) bool { return !periods[i].PeriodBegin.Before(refDate) })
	if idx > 0 {
		idx--
	}
	lo := idx - 1
	if lo < 0 {
		lo = 0
	}
	window := minInt(3, n)
	hi := lo + window - 1
	if hi > n-1 {
		hi = n - 1
		lo = maxInt(0, hi-window+1)
	}

	var mids [3]time.Time
	var ratios [3]float64
	for k := 0; k < window; k++ {
		p := periods[lo+k]
		mid := p.PeriodBegin.Add(p.PeriodEnd.Sub(p.PeriodBegin) / 2)
		age := startAge + 5*k
		bracket := (age / 5) * 5
		found := false
		for i, b := range p.AgeBrackets {
			if b == bracket {
				mids[k] = mid
				ratios[k] = p.Ratios[i]
				found = true
				break
			}
		}
		if !found {
			return [3]time.Time{}, [3]float64{}, wpperr.New(wpperr.DataMissing, "age_bracket", itoa(bracket))
		}
	}
	// fewer than three periods on record: nudge the remaining knots
	// forward by a year each, carrying the last real ratio flat, so
	// the caller's 3-point quadratic fit stays well-posed.
	for k := window; k < 3; k++ {
		mids[k] = mids[k-1].AddDate(1, 0, 0)
		ratios[k] = ratios[k-1]
	}
	return mids, ratios, nil
}
