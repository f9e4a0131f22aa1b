package wppdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRow(t *SurvivalTable, begin, end time.Time, brackets []int, ratios []float64) {
	t.Add(SurvivalRow{
		Region:      "Testland",
		Sex:         Both,
		PeriodBegin: begin,
		PeriodEnd:   end,
		AgeBrackets: brackets,
		Ratios:      ratios,
	})
}

func TestRatioAtFindsMatchingPeriodAndBracket(t *testing.T) {
	tbl := NewSurvivalTable()
	addRow(tbl, date(2015, 7, 1), date(2020, 7, 1), []int{0, 5, 10}, []float64{0.99, 0.98, 0.97})

	v, err := tbl.RatioAt("Testland", Both, date(2017, 1, 1), 7)
	require.NoError(t, err)
	assert.Equal(t, 0.98, v)
}

func TestRatioAtMissingBracketErrors(t *testing.T) {
	tbl := NewSurvivalTable()
	addRow(tbl, date(2015, 7, 1), date(2020, 7, 1), []int{0, 5}, []float64{0.99, 0.98})
	_, err := tbl.RatioAt("Testland", Both, date(2017, 1, 1), 50)
	assert.Error(t, err)
}

func TestThreeCohortDiagonalWithThreePeriods(t *testing.T) {
	tbl := NewSurvivalTable()
	addRow(tbl, date(2010, 7, 1), date(2015, 7, 1), []int{0, 5, 10, 15}, []float64{0.99, 0.98, 0.97, 0.96})
	addRow(tbl, date(2015, 7, 1), date(2020, 7, 1), []int{0, 5, 10, 15}, []float64{0.991, 0.981, 0.971, 0.961})
	addRow(tbl, date(2020, 7, 1), date(2025, 7, 1), []int{0, 5, 10, 15}, []float64{0.992, 0.982, 0.972, 0.962})

	mids, ratios, err := tbl.ThreeCohortDiagonal("Testland", Both, date(2017, 1, 1), 0)
	require.NoError(t, err)
	assert.True(t, mids[0].Before(mids[1]))
	assert.True(t, mids[1].Before(mids[2]))
	assert.Equal(t, []float64{0.99, 0.981, 0.972}, []float64{ratios[0], ratios[1], ratios[2]})
}

func TestThreeCohortDiagonalWithSinglePeriodNudgesKnots(t *testing.T) {
	tbl := NewSurvivalTable()
	addRow(tbl, date(2015, 7, 1), date(2020, 7, 1), []int{0, 5, 10}, []float64{0.99, 0.98, 0.97})

	mids, ratios, err := tbl.ThreeCohortDiagonal("Testland", Both, date(2017, 1, 1), 0)
	require.NoError(t, err)
	assert.True(t, mids[0].Before(mids[1]))
	assert.True(t, mids[1].Before(mids[2]))
	assert.Equal(t, ratios[0], ratios[1])
	assert.Equal(t, ratios[1], ratios[2])
}

func TestThreeCohortDiagonalWithTwoPeriodsNudgesThirdKnot(t *testing.T) {
	tbl := NewSurvivalTable()
	addRow(tbl, date(2010, 7, 1), date(2015, 7, 1), []int{0, 5, 10}, []float64{0.99, 0.98, 0.97})
	addRow(tbl, date(2015, 7, 1), date(2020, 7, 1), []int{0, 5, 10}, []float64{0.991, 0.981, 0.971})

	mids, ratios, err := tbl.ThreeCohortDiagonal("Testland", Both, date(2017, 1, 1), 0)
	require.NoError(t, err)
	assert.True(t, mids[0].Before(mids[1]))
	assert.True(t, mids[1].Before(mids[2]))
	assert.Equal(t, ratios[1], ratios[2])
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
