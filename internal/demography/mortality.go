package demography

import (
	"time"

	"github.com/worldpop-io/wpp-engine/internal/wppdata"
	"github.com/worldpop-io/wpp-engine/pkg/calendar"
	"github.com/worldpop-io/wpp-engine/pkg/spline"
)

// MortalityBucket is one 5-year age bracket of a mortality
// distribution: the percentage of a synthetic cohort's remaining
// deaths expected to occur within [AgeFrom, AgeTo).
type MortalityBucket struct {
	AgeFrom, AgeTo int
	PercentOfDeaths float64
}

const mortalityTopAge = 100

// MortalityDistribution projects, for a person of the given exact age
// alive on date, the percentage of their cohort's remaining deaths
// that will occur in each successive 5-year age bracket out to age
// 100. It follows dod.py's dist_odata: round the age down to its
// 5-year bracket, walk a synthetic cohort through consecutive survival
// ratios, correct the first transition with a 3-point quadratic fit
// across the periods straddling date, and finally discount the
// fraction of the first bracket already elapsed since the exact age.
func (a *Algorithms) MortalityDistribution(date time.Time, region wppdata.Region, sex wppdata.Sex, age int) ([]MortalityBucket, error) {
	baseAge := (age / 5) * 5
	if baseAge >= mortalityTopAge {
		return []MortalityBucket{{AgeFrom: mortalityTopAge, AgeTo: mortalityTopAge + 5, PercentOfDeaths: 100}}, nil
	}

	mids, ratios, err := a.Survival.ThreeCohortDiagonal(region, sex, date, baseAge)
	if err != nil {
		return nil, err
	}
	xs := [3]float64{calendar.DecimalYear(mids[0]), calendar.DecimalYear(mids[1]), calendar.DecimalYear(mids[2])}
	q, err := spline.NewQuadratic3(xs, ratios)
	if err != nil {
		return nil, err
	}
	firstRatio := q.Eval(calendar.DecimalYear(date))

	var brackets []int
	for b := baseAge; b < mortalityTopAge; b += 5 {
		brackets = append(brackets, b)
	}

	deaths := make([]float64, len(brackets))
	survival := 1.0
	for i, b := range brackets {
		var ratio float64
		if i == 0 {
			ratio = firstRatio
		} else {
			ratio, err = a.Survival.RatioAt(region, sex, date, b)
			if err != nil {
				return nil, err
			}
		}
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		deaths[i] = survival * (1 - ratio)
		survival *= ratio
	}

	fracIntoBracket := float64(age-baseAge) / 5.0
	deaths[0] -= deaths[0] * fracIntoBracket

	total := 0.0
	for _, d := range deaths {
		total += d
	}
	out := make([]MortalityBucket, len(brackets))
	for i, b := range brackets {
		pct := 0.0
		if total > 0 {
			pct = deaths[i] / total * 100
		}
		out[i] = MortalityBucket{AgeFrom: b, AgeTo: b + 5, PercentOfDeaths: pct}
	}
	return out, nil
}
