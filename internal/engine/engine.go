// Package engine wires the loaded population tables (C1-C3), the
// daily interpolator cache (C4), and the query/algorithm layers
// (C5-C6) into a single immutable value. There is deliberately no
// package-level global state: every consumer holds its own *Engine,
// constructed once at process start via New.
package engine

import (
	"time"

	"github.com/worldpop-io/wpp-engine/internal/config"
	"github.com/worldpop-io/wpp-engine/internal/daily"
	"github.com/worldpop-io/wpp-engine/internal/demography"
	"github.com/worldpop-io/wpp-engine/internal/wppdata"
)

// Engine is the single entry point into the population model: an
// immutable value wiring the loaded tables, the lazily-built daily
// interpolator cache, and the query/algorithm layers, grounded on the
// teacher's CalculationEngine wiring pattern.
type Engine struct {
	population     *wppdata.PopulationTable
	lifeExpectancy *wppdata.LifeExpectancyTable
	survival       *wppdata.SurvivalTable
	cache          *daily.Cache
	query          *demography.QueryEngine
	algorithms     *demography.Algorithms
	logger         Logger
}

// New loads the three source tables per cfg and builds an Engine. The
// daily interpolator cache is constructed empty; individual
// (region, sex) surfaces are built lazily on first query.
func New(cfg *config.EngineConfig, logger Logger) (*Engine, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	adapter := loaderLoggerAdapter{l: logger}

	population, err := wppdata.LoadPopulationCSV(cfg.PopulationCSVPath, adapter)
	if err != nil {
		return nil, err
	}
	lifeExpectancy, err := wppdata.LoadLifeExpectancyCSV(cfg.LifeExpectancyCSVPath, adapter)
	if err != nil {
		return nil, err
	}
	survival, err := wppdata.LoadSurvivalRatioCSV(cfg.SurvivalRatioCSVPath, adapter)
	if err != nil {
		return nil, err
	}
	if err := population.CheckInvariants(); err != nil {
		return nil, err
	}

	factory := &demography.InterpolatorFactory{Table: population}
	cache := daily.NewCache(factory)

	yearMin, yearMax := population.YearRange()
	ageMin, ageMax := population.AgeRange()
	query := demography.NewQueryEngine(cache, yearMin, yearMax)
	algorithms := &demography.Algorithms{
		Query:          query,
		LifeExpectancy: lifeExpectancy,
		Survival:       survival,
		PopAgeMin:      ageMin,
		PopAgeMax:      ageMax,
	}

	logger.Infof("engine: loaded %d regions, years %d-%d, ages %d-%d", len(population.Regions()), yearMin, yearMax, ageMin, ageMax)

	return &Engine{
		population:     population,
		lifeExpectancy: lifeExpectancy,
		survival:       survival,
		cache:          cache,
		query:          query,
		algorithms:     algorithms,
		logger:         logger,
	}, nil
}

// Regions returns the known region set.
func (e *Engine) Regions() []wppdata.Region { return e.population.Regions() }

// PopAge returns the instantaneous population of an exact age on date.
func (e *Engine) PopAge(date time.Time, region wppdata.Region, sex wppdata.Sex, age float64) (float64, error) {
	return e.query.PopAge(date, region, sex, age)
}

// PopDob returns the instantaneous population of a cohort born on dob,
// observed on date.
func (e *Engine) PopDob(date time.Time, region wppdata.Region, sex wppdata.Sex, dob time.Time) (float64, error) {
	return e.query.PopDob(date, region, sex, dob)
}

// PopSumAge returns the summed population across an inclusive age
// range on date.
func (e *Engine) PopSumAge(date time.Time, region wppdata.Region, sex wppdata.Sex, ageFrom, ageTo int) (float64, error) {
	return e.query.PopSumAge(date, region, sex, ageFrom, ageTo)
}

// PopSumDob returns the summed population of a cohort born within
// [dobFrom, dobTo], observed on date.
func (e *Engine) PopSumDob(date time.Time, region wppdata.Region, sex wppdata.Sex, dobFrom, dobTo time.Time) (float64, error) {
	return e.query.PopSumDob(date, region, sex, dobFrom, dobTo)
}

// PopSumDobInverseDate finds the date a born-after-dobFrom cohort
// first reaches pop members.
func (e *Engine) PopSumDobInverseDate(pop float64, region wppdata.Region, sex wppdata.Sex, dobFrom time.Time) (time.Time, error) {
	return e.query.PopSumDobInverseDate(pop, region, sex, dobFrom)
}

// Rank returns the world population rank of a person born on dob, on date.
func (e *Engine) Rank(date time.Time, region wppdata.Region, sex wppdata.Sex, dob time.Time) (float64, error) {
	return e.query.Rank(date, region, sex, dob)
}

// DateForRank inverts Rank.
func (e *Engine) DateForRank(region wppdata.Region, sex wppdata.Sex, dob time.Time, rank float64) (time.Time, error) {
	return e.query.DateForRank(region, sex, dob, rank)
}

// RemainingLifeExpectancy returns expected remaining years of life for
// someone of the given age, on date.
func (e *Engine) RemainingLifeExpectancy(date time.Time, region wppdata.Region, sex wppdata.Sex, age float64) (float64, error) {
	return e.algorithms.RemainingLifeExpectancy(date, region, sex, age)
}

// TotalLifeExpectancy returns life expectancy at birth for someone
// born on dob (age-35-anchored).
func (e *Engine) TotalLifeExpectancy(dob time.Time, region wppdata.Region, sex wppdata.Sex) (float64, error) {
	return e.algorithms.TotalLifeExpectancy(dob, region, sex)
}

// TotalPopulation returns the total population across the full loaded
// age range, on date.
func (e *Engine) TotalPopulation(date time.Time, region wppdata.Region, sex wppdata.Sex) (float64, error) {
	return e.algorithms.TotalPopulation(date, region, sex)
}

// PopulationCount returns the population of an exact integer age in
// [0, 100], on date.
func (e *Engine) PopulationCount(date time.Time, region wppdata.Region, sex wppdata.Sex, age int) (float64, error) {
	return e.algorithms.PopulationCount(date, region, sex, age)
}

// MortalityDistribution projects the 5-year-bracket mortality
// distribution for someone of the given age, on date.
func (e *Engine) MortalityDistribution(date time.Time, region wppdata.Region, sex wppdata.Sex, age int) ([]demography.MortalityBucket, error) {
	return e.algorithms.MortalityDistribution(date, region, sex, age)
}
