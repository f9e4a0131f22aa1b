package demography

import (
	"math"
	"strconv"
	"time"

	"github.com/worldpop-io/wpp-engine/internal/daily"
	"github.com/worldpop-io/wpp-engine/internal/wppdata"
	"github.com/worldpop-io/wpp-engine/pkg/calendar"
	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// QueryEngine implements the population query primitives (C5) over a
// lazily-built daily interpolator cache.
type QueryEngine struct {
	cache   *daily.Cache
	yearMin int
	yearMax int
}

// NewQueryEngine builds a QueryEngine backed by cache, using the given
// enumeration-year horizon (from the C1 table) to decide which side of
// a date-integration window needs the one-sided widening described in
// PopSumAge.
func NewQueryEngine(cache *daily.Cache, yearMin, yearMax int) *QueryEngine {
	return &QueryEngine{cache: cache, yearMin: yearMin, yearMax: yearMax}
}

func (q *QueryEngine) dateHorizonDays() (float64, float64) {
	lo := float64(calendar.ToEpochDays(time.Date(q.yearMin, time.July, 1, 0, 0, 0, 0, time.UTC)))
	hi := float64(calendar.ToEpochDays(time.Date(q.yearMax, time.July, 1, 0, 0, 0, 0, time.UTC)))
	return lo, hi
}

// PopAge returns the instantaneous population of the given exact age
// (in years) on date, for (region, sex).
func (q *QueryEngine) PopAge(date time.Time, region wppdata.Region, sex wppdata.Sex, age float64) (float64, error) {
	interp, err := q.cache.Get(region, sex)
	if err != nil {
		return 0, err
	}
	ageDays := age * calendar.DaysPerYear
	dateDays := float64(calendar.ToEpochDays(date))
	v, err := interp.Evaluate(ageDays, dateDays)
	if err != nil {
		return 0, err
	}
	return math.Round(v), nil
}

// PopDob returns the instantaneous population of the cohort born on
// dob, evaluated on date, for (region, sex).
func (q *QueryEngine) PopDob(date time.Time, region wppdata.Region, sex wppdata.Sex, dob time.Time) (float64, error) {
	interp, err := q.cache.Get(region, sex)
	if err != nil {
		return 0, err
	}
	ageDays := float64(calendar.AgeInDays(dob, date))
	dateDays := float64(calendar.ToEpochDays(date))
	v, err := interp.Evaluate(ageDays, dateDays)
	if err != nil {
		return 0, err
	}
	return math.Round(v), nil
}

// dateWindowFactor picks the date-integration window and its
// normalizing factor around dateDays, narrowing to a one-sided 0.1-day
// window (factor x10) when the symmetric +-0.1 window would cross the
// loaded data horizon, and to the full symmetric window (factor x5)
// otherwise.
func (q *QueryEngine) dateWindowFactor(dateDays float64) (lo, hi, factor float64) {
	horizonLo, horizonHi := q.dateHorizonDays()
	switch {
	case dateDays-0.1 < horizonLo:
		return dateDays, dateDays + 0.1, 10
	case dateDays+0.1 > horizonHi:
		return dateDays - 0.1, dateDays, 10
	default:
		return dateDays - 0.1, dateDays + 0.1, 5
	}
}

// PopSumAge returns the summed population across the inclusive age
// range [ageFrom, ageTo] on date, approximating a point-in-time sum by
// integrating across a narrow date window and rescaling, following the
// original model's integral(...)*5 convention for a +-0.1 day window.
func (q *QueryEngine) PopSumAge(date time.Time, region wppdata.Region, sex wppdata.Sex, ageFrom, ageTo int) (float64, error) {
	if ageTo < ageFrom {
		return 0, wpperr.New(wpperr.InvalidInput, "age_to", strconv.Itoa(ageTo)).WithRange("age_to >= age_from")
	}
	interp, err := q.cache.Get(region, sex)
	if err != nil {
		return 0, err
	}
	dateDays := float64(calendar.ToEpochDays(date))
	lo, hi, factor := q.dateWindowFactor(dateDays)
	ageFromDays := float64(ageFrom) * calendar.DaysPerYear
	ageToDays := float64(ageTo+1) * calendar.DaysPerYear
	v, err := interp.Integrate(ageFromDays, ageToDays, lo, hi)
	if err != nil {
		return 0, err
	}
	return math.Round(v * factor), nil
}

// PopSumDob returns the summed population of the cohort born within
// [dobFrom, dobTo], evaluated on date.
func (q *QueryEngine) PopSumDob(date time.Time, region wppdata.Region, sex wppdata.Sex, dobFrom, dobTo time.Time) (float64, error) {
	if dobTo.Before(dobFrom) {
		return 0, wpperr.New(wpperr.InvalidInput, "dob_to", dobTo.String()).WithRange("dob_to >= dob_from")
	}
	interp, err := q.cache.Get(region, sex)
	if err != nil {
		return 0, err
	}
	dateDays := float64(calendar.ToEpochDays(date))
	lo, hi, factor := q.dateWindowFactor(dateDays)
	ageFromDays := float64(calendar.AgeInDays(dobTo, date))   // younger dob -> smaller age
	ageToDays := float64(calendar.AgeInDays(dobFrom, date))   // older dob -> larger age
	v, err := interp.Integrate(ageFromDays, ageToDays, lo, hi)
	if err != nil {
		return 0, err
	}
	return math.Round(v * factor), nil
}

// PopSumDobInverseDate finds, by bisection, the smallest date on or
// after dobFrom at which the cumulative population born in
// [dobFrom, date] and still alive on date first reaches pop. If pop is
// zero the search has a fixed point at dobFrom itself, returned
// immediately without bisecting.
func (q *QueryEngine) PopSumDobInverseDate(pop float64, region wppdata.Region, sex wppdata.Sex, dobFrom time.Time) (time.Time, error) {
	if pop == 0 {
		return dobFrom, nil
	}
	lower := calendar.ToEpochDays(dobFrom)
	_, horizonHi := q.dateHorizonDays()
	upper := int(horizonHi)
	if upper <= lower {
		return time.Time{}, wpperr.New(wpperr.OutOfRange, "dob_from", dobFrom.String()).WithRange("before data horizon")
	}

	for upper-lower > 1 {
		mid := lower + (upper-lower)/2
		midDate := calendar.FromEpochDays(mid)
		v, err := q.PopSumDob(midDate, region, sex, dobFrom, midDate)
		if err != nil {
			return time.Time{}, err
		}
		if v < pop {
			lower = mid
		} else {
			upper = mid
		}
	}
	return calendar.FromEpochDays(upper), nil
}
