package demography

import (
	"math"
	"time"

	"github.com/worldpop-io/wpp-engine/internal/wppdata"
	"github.com/worldpop-io/wpp-engine/pkg/calendar"
	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

const (
	minBirthYear     = 1920
	minRefYear       = 1950
	maxRankWindowDays = 36500 // matches the original rank calculator's ~100-year span cap
)

// ValidateRankInputs enforces the exact bounds the original world
// population rank calculator used: a birthdate no earlier than
// 1920-01-01 and no later than today, a reference date no earlier than
// 1950-01-01 and never before the birthdate, and a birthdate-to-
// reference-date span no wider than 36500 days (~100 years).
func ValidateRankInputs(dob, refDate time.Time) error {
	minDob := time.Date(minBirthYear, 1, 1, 0, 0, 0, 0, time.UTC)
	minRef := time.Date(minRefYear, 1, 1, 0, 0, 0, 0, time.UTC)
	if dob.Before(minDob) {
		return wpperr.New(wpperr.OutOfRange, "dob", dob.String()).WithRange("on or after 1920-01-01")
	}
	if dob.After(time.Now()) {
		return wpperr.New(wpperr.OutOfRange, "dob", dob.String()).WithRange("on or before today")
	}
	if refDate.Before(minRef) {
		return wpperr.New(wpperr.OutOfRange, "date", refDate.String()).WithRange("on or after 1950-01-01")
	}
	if refDate.Before(dob) {
		return wpperr.New(wpperr.OutOfRange, "date", refDate.String()).WithRange("on or after dob")
	}
	if calendar.AgeInDays(dob, refDate) > maxRankWindowDays {
		return wpperr.New(wpperr.OutOfRange, "date", refDate.String()).WithRange("within 36500 days of dob")
	}
	return nil
}

// Rank returns the world population rank of a person born on dob, as
// observed on date: the count of people born on or after dob and
// still alive on date, i.e. how many people are the same age or
// younger. Rank 1 is the youngest person alive.
func (q *QueryEngine) Rank(date time.Time, region wppdata.Region, sex wppdata.Sex, dob time.Time) (float64, error) {
	if err := ValidateRankInputs(dob, date); err != nil {
		return 0, err
	}
	younger, err := q.PopSumDob(date, region, sex, dob, date)
	if err != nil {
		return 0, err
	}
	return math.Max(1, younger), nil
}

// DateForRank inverts Rank: the date at which a person born on dob
// first attains the given world population rank, found by integer-day
// bisection over PopSumDobInverseDate.
func (q *QueryEngine) DateForRank(region wppdata.Region, sex wppdata.Sex, dob time.Time, rank float64) (time.Time, error) {
	minDob := time.Date(minBirthYear, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDob := time.Date(2079, 12, 31, 0, 0, 0, 0, time.UTC)
	if dob.Before(minDob) || dob.After(maxDob) {
		return time.Time{}, wpperr.New(wpperr.OutOfRange, "dob", dob.String()).WithRange("1920-01-01..2079-12-31")
	}
	return q.PopSumDobInverseDate(rank, region, sex, dob)
}
