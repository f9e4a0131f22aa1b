// Package config loads and validates the YAML configuration that
// tells the engine where to find its source tables.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EngineConfig describes the on-disk location of the three source
// tables plus the enumeration anchor and log level. Response
// serialization, HTTP routing, and on-disk interpolator caching are
// explicitly out of scope and have no representation here.
type EngineConfig struct {
	PopulationCSVPath     string `yaml:"population_csv"`
	LifeExpectancyCSVPath string `yaml:"life_expectancy_csv"`
	SurvivalRatioCSVPath  string `yaml:"survival_ratio_csv"`
	EnumerationMonth      int    `yaml:"enumeration_month"`
	EnumerationDay        int    `yaml:"enumeration_day"`
	LogLevel              string `yaml:"log_level"`
}

// DefaultEngineConfig returns a config with the July-1 enumeration
// anchor and "info" logging, with no data paths set.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		EnumerationMonth: 7,
		EnumerationDay:   1,
		LogLevel:         "info",
	}
}

// Parser loads and validates an EngineConfig from a YAML file,
// following the teacher's InputParser load-then-validate shape.
type Parser struct{}

// NewParser builds a Parser.
func NewParser() *Parser { return &Parser{} }

// LoadFromFile reads and validates the config at filename.
func (p *Parser) LoadFromFile(filename string) (*EngineConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", filename)
	}

	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", filename)
	}

	if err := p.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the required data paths are set and the
// enumeration anchor is a real month/day combination.
func (p *Parser) Validate(cfg *EngineConfig) error {
	if cfg.PopulationCSVPath == "" {
		return errors.New("config: population_csv is required")
	}
	if cfg.LifeExpectancyCSVPath == "" {
		return errors.New("config: life_expectancy_csv is required")
	}
	if cfg.SurvivalRatioCSVPath == "" {
		return errors.New("config: survival_ratio_csv is required")
	}
	if cfg.EnumerationMonth < 1 || cfg.EnumerationMonth > 12 {
		return errors.Errorf("config: enumeration_month %d out of range 1..12", cfg.EnumerationMonth)
	}
	if cfg.EnumerationDay < 1 || cfg.EnumerationDay > 31 {
		return errors.Errorf("config: enumeration_day %d out of range 1..31", cfg.EnumerationDay)
	}
	// a leap year, so that February 29 is accepted
	if time.Date(2000, time.Month(cfg.EnumerationMonth), cfg.EnumerationDay, 0, 0, 0, 0, time.UTC).Day() != cfg.EnumerationDay {
		return errors.Errorf("config: enumeration_day %d does not exist in month %d", cfg.EnumerationDay, cfg.EnumerationMonth)
	}
	return nil
}
