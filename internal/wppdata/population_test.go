package wppdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulationTableSetAndGet(t *testing.T) {
	tbl := NewPopulationTable(0, 2, 2000, 2002)
	tbl.Set("Testland", Male, 1, 2001, 100)
	tbl.Set("Testland", Female, 1, 2001, 90)
	tbl.Set("Testland", Both, 1, 2001, 190)

	v, err := tbl.PopAge(2001, "Testland", Male, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = tbl.PopAge(2001, "Testland", Both, 1)
	require.NoError(t, err)
	assert.Equal(t, 190.0, v)
}

func TestPopulationTableAgeOutOfRangeReturnsZero(t *testing.T) {
	tbl := NewPopulationTable(0, 2, 2000, 2002)
	tbl.Set("Testland", Male, 1, 2001, 100)
	v, err := tbl.PopAge(2001, "Testland", Male, 99)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestPopulationTableYearOutOfRangeErrors(t *testing.T) {
	tbl := NewPopulationTable(0, 2, 2000, 2002)
	tbl.Set("Testland", Male, 1, 2001, 100)
	_, err := tbl.PopAge(1999, "Testland", Male, 1)
	assert.Error(t, err)
}

func TestPopulationTableUnknownRegionErrors(t *testing.T) {
	tbl := NewPopulationTable(0, 2, 2000, 2002)
	tbl.Set("Testland", Male, 1, 2001, 100)
	_, err := tbl.PopAge(2001, "Nowhereland", Male, 1)
	assert.Error(t, err)
}

func TestPopulationTableInvariantCheck(t *testing.T) {
	tbl := NewPopulationTable(0, 1, 2000, 2000)
	tbl.Set("Testland", Male, 0, 2000, 50)
	tbl.Set("Testland", Female, 0, 2000, 50)
	tbl.Set("Testland", Both, 0, 2000, 100)
	tbl.Set("Testland", Male, 1, 2000, 10)
	tbl.Set("Testland", Female, 1, 2000, 10)
	tbl.Set("Testland", Both, 1, 2000, 20)
	assert.NoError(t, tbl.CheckInvariants())
}

func TestPopulationTableInvariantViolation(t *testing.T) {
	tbl := NewPopulationTable(0, 0, 2000, 2000)
	tbl.Set("Testland", Male, 0, 2000, 50)
	tbl.Set("Testland", Female, 0, 2000, 50)
	tbl.Set("Testland", Both, 0, 2000, 5000)
	assert.Error(t, tbl.CheckInvariants())
}

func TestPopulationTableInvariantToleratesThousandsRounding(t *testing.T) {
	tbl := NewPopulationTable(0, 0, 2000, 2000)
	tbl.Set("Testland", Male, 0, 2000, 50)
	tbl.Set("Testland", Female, 0, 2000, 50)
	tbl.Set("Testland", Both, 0, 2000, 599)
	assert.NoError(t, tbl.CheckInvariants())
}

func TestAustraliaNewZealandAliasNormalizes(t *testing.T) {
	tbl := NewPopulationTable(0, 0, 2000, 2000)
	tbl.Set("Australia/New Zealand", Both, 0, 2000, 42)
	v, err := tbl.PopAge(2000, "Australia and New Zealand", Both, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		in   string
		want Sex
	}{
		{"M", Male}, {"female", Female}, {"Total", Both}, {"B", Both},
	}
	for _, tt := range tests {
		got, err := ParseSex(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseSex("X")
	assert.Error(t, err)
}
