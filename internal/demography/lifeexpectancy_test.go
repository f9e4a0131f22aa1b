package demography

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpop-io/wpp-engine/internal/wppdata"
)

func buildLifeExpectancyTable() *wppdata.LifeExpectancyTable {
	tbl := wppdata.NewLifeExpectancyTable()
	ages := []int{0, 1, 5, 10, 15, 20, 25, 30, 35, 40, 50, 60, 70, 80, 90, 100, 110, 120, 125}
	for _, yr := range []int{2010, 2015, 2020} {
		values := make([]float64, len(ages))
		for i, a := range ages {
			values[i] = 80 - float64(a)*0.6
			if values[i] < 0 {
				values[i] = 0
			}
		}
		tbl.Add(wppdata.LifeExpectancyRow{
			Region:      "World",
			Sex:         wppdata.Both,
			PeriodBegin: time.Date(yr, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(yr+5, 7, 1, 0, 0, 0, 0, time.UTC),
			Ages:        ages,
			Values:      values,
		})
	}
	return tbl
}

func TestRemainingLifeExpectancyInterpolatesAcrossPeriods(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	v, err := a.RemainingLifeExpectancy(time.Date(2017, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 35)
	require.NoError(t, err)
	assert.InDelta(t, 80-35*0.6, v, 2)
}

func TestRemainingLifeExpectancyRejectsAgeAboveLimit(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	_, err := a.RemainingLifeExpectancy(time.Date(2017, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 121)
	assert.Error(t, err)
}

func TestRemainingLifeExpectancyRejectsRefDateBeforeWindow(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	_, err := a.RemainingLifeExpectancy(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 35)
	assert.Error(t, err)
}

func TestRemainingLifeExpectancyRejectsRefDateAtOrAfterWindowEnd(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	_, err := a.RemainingLifeExpectancy(time.Date(2095, 1, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 35)
	assert.Error(t, err)
}

func TestTotalLifeExpectancyComputesFromDob(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	v, err := a.TotalLifeExpectancy(time.Date(1980, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both)
	require.NoError(t, err)
	assert.InDelta(t, (80-35*0.6)+35, v, 2)
}

func TestTotalLifeExpectancyRejectsDobOutsideWindow(t *testing.T) {
	le := buildLifeExpectancyTable()
	a := &Algorithms{LifeExpectancy: le, PopAgeMin: 0, PopAgeMax: 100}
	_, err := a.TotalLifeExpectancy(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both)
	assert.Error(t, err)
	_, err = a.TotalLifeExpectancy(time.Date(2070, 1, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both)
	assert.Error(t, err)
}

func TestPopulationCountRejectsOutOfRangeAge(t *testing.T) {
	tbl := buildFlatTable(1000)
	q := newTestQueryEngine(t, tbl)
	a := &Algorithms{Query: q, PopAgeMin: 0, PopAgeMax: 10}
	_, err := a.PopulationCount(time.Date(2005, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 101)
	assert.Error(t, err)
}

func TestPopulationCountAcceptsAgeZero(t *testing.T) {
	tbl := buildFlatTable(1000)
	q := newTestQueryEngine(t, tbl)
	a := &Algorithms{Query: q, PopAgeMin: 0, PopAgeMax: 10}
	_, err := a.PopulationCount(time.Date(2005, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both, 0)
	assert.NoError(t, err)
}

func TestTotalPopulationUsesFullAgeRange(t *testing.T) {
	tbl := wppdata.NewPopulationTable(0, 10, 2010, 2025)
	for age := 0; age <= 10; age++ {
		for year := 2010; year <= 2025; year++ {
			tbl.Set("World", wppdata.Both, age, year, 1000)
		}
	}
	q := newTestQueryEngine(t, tbl)
	a := &Algorithms{Query: q, PopAgeMin: 0, PopAgeMax: 10}
	v, err := a.TotalPopulation(time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both)
	require.NoError(t, err)
	assert.InDelta(t, 11000, v, 200)
}

func TestTotalPopulationRejectsDateOutsideSupportedWindow(t *testing.T) {
	tbl := buildFlatTable(1000)
	q := newTestQueryEngine(t, tbl)
	a := &Algorithms{Query: q, PopAgeMin: 0, PopAgeMax: 10}
	_, err := a.TotalPopulation(time.Date(2005, 7, 1, 0, 0, 0, 0, time.UTC), "World", wppdata.Both)
	assert.Error(t, err)
}
