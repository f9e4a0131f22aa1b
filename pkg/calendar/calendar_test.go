package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToEpochDaysRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{"epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"before epoch", time.Date(1920, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"far future", time.Date(2100, 6, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := ToEpochDays(tt.date)
			got := FromEpochDays(days)
			assert.True(t, tt.date.Equal(got), "round trip mismatch: want %v got %v", tt.date, got)
		})
	}
}

func TestDecimalYearRoundTrip(t *testing.T) {
	days := ToEpochDays(time.Date(2000, 7, 2, 0, 0, 0, 0, time.UTC))
	year, frac := DaysToDecimalYear(days, DefaultAnchorMonth, DefaultAnchorDay)
	back := DecimalYearToDays(year, frac, DefaultAnchorMonth, DefaultAnchorDay)
	assert.InDelta(t, days, back, 1)
}

func TestDaysToDecimalYearHonorsCustomAnchor(t *testing.T) {
	days := ToEpochDays(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC))
	year, frac := DaysToDecimalYear(days, time.January, 1)
	assert.Equal(t, 2000, year)
	assert.InDelta(t, 1.0/DaysPerYear, frac, 1e-9)
}

func TestDaysToDecimalYearBeforeAnchorUsesPriorYear(t *testing.T) {
	days := ToEpochDays(time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC))
	year, frac := DaysToDecimalYear(days, time.July, 1)
	assert.Equal(t, 1999, year)
	assert.Greater(t, frac, 0.5)
}

func TestDecimalYearToDaysExactAtAnchor(t *testing.T) {
	got := DecimalYearToDays(2000, 0, DefaultAnchorMonth, DefaultAnchorDay)
	want := ToEpochDays(time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, want, got)
}

func TestAgeInYearsUsesFixedDaysPerYear(t *testing.T) {
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	on := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	age := AgeInYears(dob, on)
	assert.InDelta(t, 3653.0/DaysPerYear, age, 1e-9)
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Offset
		wantErr bool
	}{
		{"plain days", "45", Offset{Days: 45}, false},
		{"years only", "2y", Offset{Years: 2}, false},
		{"compound", "1y2m3d", Offset{Years: 1, Months: 2, Days: 3}, false},
		{"months days", "6m15d", Offset{Months: 6, Days: 15}, false},
		{"empty", "", Offset{}, true},
		{"garbage", "abc", Offset{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOffset(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetStringRoundTrip(t *testing.T) {
	o := Offset{Years: 1, Months: 2, Days: 3}
	assert.Equal(t, "1y2m3d", o.String())
	assert.Equal(t, "0d", Offset{}.String())
}
