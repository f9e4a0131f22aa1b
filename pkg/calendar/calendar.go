// Package calendar provides the epoch-day and decimal-year arithmetic
// shared by the population data and query layers, plus the offset
// grammar used to express "N years, M months, D days" adjustments.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// DaysPerYear is the fixed Julian year length used throughout the
// demographic calculations. It must not be replaced with 365 or the
// Gregorian mean 365.2425 — every decimal-year boundary in the data
// tables is defined relative to this constant.
const DaysPerYear = 365.25

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ToEpochDays returns the number of days between the epoch (1970-01-01)
// and d, truncated to whole calendar days.
func ToEpochDays(d time.Time) int {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(epoch).Hours() / 24)
}

// FromEpochDays is the inverse of ToEpochDays.
func FromEpochDays(days int) time.Time {
	return epoch.AddDate(0, 0, days)
}

// DefaultAnchorMonth and DefaultAnchorDay give the enumeration-year
// anchor used when callers don't need a different one: July 1, the
// mid-year reference date the population tables are enumerated against.
const (
	DefaultAnchorMonth = time.July
	DefaultAnchorDay   = 1
)

// DaysToDecimalYear converts an epoch-day count into a (year, fraction)
// pair where frac is in [0, 1) and measures how far days lies from the
// (year, startMonth, startDay) anchor towards the next one, in units of
// DaysPerYear. Used for enumeration-year framing; pass DefaultAnchorMonth/
// DefaultAnchorDay for the July-1 convention spec.md describes.
func DaysToDecimalYear(days int, startMonth time.Month, startDay int) (year int, frac float64) {
	d := FromEpochDays(days)
	anchor := time.Date(d.Year(), startMonth, startDay, 0, 0, 0, 0, time.UTC)
	if d.Before(anchor) {
		anchor = time.Date(d.Year()-1, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	}
	year = anchor.Year()
	frac = float64(days-ToEpochDays(anchor)) / DaysPerYear
	return year, frac
}

// DecimalYearToDays is the inverse of DaysToDecimalYear.
func DecimalYearToDays(year int, frac float64, startMonth time.Month, startDay int) int {
	anchor := time.Date(year, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	return ToEpochDays(anchor) + int(frac*DaysPerYear)
}

// DecimalYear returns the decimal-year representation of a date using
// the default July-1 enumeration anchor (e.g. 2000.5 for 2001-01-01-ish).
func DecimalYear(d time.Time) float64 {
	days := ToEpochDays(d)
	y, f := DaysToDecimalYear(days, DefaultAnchorMonth, DefaultAnchorDay)
	return float64(y) + f
}

// AgeInDays returns the whole number of days between dob and on,
// i.e. on - dob expressed as an epoch-day difference.
func AgeInDays(dob, on time.Time) int {
	return ToEpochDays(on) - ToEpochDays(dob)
}

// AgeInYears returns the decimal-year age of someone born on dob,
// evaluated on the given date.
func AgeInYears(dob, on time.Time) float64 {
	return float64(AgeInDays(dob, on)) / DaysPerYear
}

// Offset is a parsed "Nyy Mmm Ddd"-style adjustment, or a plain day
// count when only Days is set and Years/Months are zero.
type Offset struct {
	Years, Months, Days int
}

var offsetPattern = regexp.MustCompile(`^(?:(\d+)y)?(?:(\d+)m)?(?:(\d+)d)?$`)

// ParseOffset parses either the compound "1y2m3d"-style grammar or a
// bare integer day count ("45"). An all-empty compound match (e.g. the
// empty string) is rejected as a Parse error.
func ParseOffset(s string) (Offset, error) {
	if s == "" {
		return Offset{}, wpperr.New(wpperr.Parse, "offset", s).WithRange(`"<N>y<N>m<N>d" or integer days`)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Offset{Days: n}, nil
	}
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return Offset{}, wpperr.New(wpperr.Parse, "offset", s).WithRange(`"<N>y<N>m<N>d" or integer days`)
	}
	o := Offset{}
	if m[1] != "" {
		o.Years, _ = strconv.Atoi(m[1])
	}
	if m[2] != "" {
		o.Months, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		o.Days, _ = strconv.Atoi(m[3])
	}
	return o, nil
}

// String renders the offset back into the compound grammar, omitting
// zero-valued components. A fully-zero offset renders as "0d".
func (o Offset) String() string {
	if o.Years == 0 && o.Months == 0 && o.Days == 0 {
		return "0d"
	}
	s := ""
	if o.Years != 0 {
		s += fmt.Sprintf("%dy", o.Years)
	}
	if o.Months != 0 {
		s += fmt.Sprintf("%dm", o.Months)
	}
	if o.Days != 0 {
		s += fmt.Sprintf("%dd", o.Days)
	}
	return s
}

// Apply adds the offset to d using calendar (not fixed-day) year/month
// arithmetic for Years/Months, then fixed-day arithmetic for Days.
func (o Offset) Apply(d time.Time) time.Time {
	return d.AddDate(o.Years, o.Months, o.Days)
}
