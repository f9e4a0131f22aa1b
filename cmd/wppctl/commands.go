package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldpop-io/wpp-engine/internal/config"
	"github.com/worldpop-io/wpp-engine/internal/engine"
	"github.com/worldpop-io/wpp-engine/internal/reportfmt"
	"github.com/worldpop-io/wpp-engine/internal/wppdata"
	"github.com/worldpop-io/wpp-engine/pkg/calendar"
)

func loadEngine(configPath string) (*engine.Engine, error) {
	cfg, err := config.NewParser().LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg, engine.NopLogger{})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// resolveDate picks the observation date from at most one of an
// explicit YYYY-MM-DD date, an --ago offset before today, or an --in
// offset after today; with none of them set it is today, and setting
// more than one is an error.
func resolveDate(date, ago, in string) (time.Time, error) {
	set := 0
	for _, s := range []string{date, ago, in} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return time.Time{}, fmt.Errorf("--date, --ago and --in are mutually exclusive")
	}
	switch {
	case date != "":
		return parseDate(date)
	case ago != "":
		off, err := calendar.ParseOffset(ago)
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().AddDate(-off.Years, -off.Months, -off.Days), nil
	case in != "":
		off, err := calendar.ParseOffset(in)
		if err != nil {
			return time.Time{}, err
		}
		return off.Apply(time.Now()), nil
	default:
		return time.Now(), nil
	}
}

func emit(format string, r *reportfmt.Result) error {
	f := reportfmt.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q; available: %v", format, reportfmt.AvailableFormatterNames())
	}
	out, err := f.Format(r)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Println()
	}
	return err
}

func newPopAgeCmd(configPath, format *string) *cobra.Command {
	var region, sex string
	var date string
	var age float64
	cmd := &cobra.Command{
		Use:   "pop-age",
		Short: "Instantaneous population of an exact age on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			v, err := eng.PopAge(d, wppdata.Region(region), s, age)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "pop_age", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().Float64Var(&age, "age", 0, "exact age in years")
	return cmd
}

func newPopDobCmd(configPath, format *string) *cobra.Command {
	var region, sex, date, dob string
	cmd := &cobra.Command{
		Use:   "pop-dob",
		Short: "Instantaneous population of a cohort born on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			b, err := parseDate(dob)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			v, err := eng.PopDob(d, wppdata.Region(region), s, b)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "pop_dob", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD")
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth, YYYY-MM-DD")
	return cmd
}

func newRankCmd(configPath, format *string) *cobra.Command {
	var region, sex, date, dob, ago, in string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "World population rank of a person born on a date",
		Long: "World population rank of a person born on a date. The observation date " +
			"defaults to --date, or can instead be given relative to today via " +
			"--ago (today minus an offset) or --in (today plus an offset), in the " +
			`"<N>y<N>m<N>d" grammar — mirroring the original API's wprank_ago/wprank_in endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := resolveDate(date, ago, in)
			if err != nil {
				return err
			}
			b, err := parseDate(dob)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			v, err := eng.Rank(d, wppdata.Region(region), s, b)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "rank", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD (mutually exclusive with --ago/--in)")
	cmd.Flags().StringVar(&ago, "ago", "", `observation date as an offset before today, e.g. "1y6m"`)
	cmd.Flags().StringVar(&in, "in", "", `observation date as an offset after today, e.g. "45d"`)
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth, YYYY-MM-DD")
	return cmd
}

func newDateForRankCmd(configPath, format *string) *cobra.Command {
	var region, sex, dob string
	var rank float64
	cmd := &cobra.Command{
		Use:   "date-for-rank",
		Short: "Date at which a person born on a date attains a world population rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			b, err := parseDate(dob)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			d, err := eng.DateForRank(wppdata.Region(region), s, b, rank)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "date_for_rank", Region: region, Sex: sex, Date: d})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth, YYYY-MM-DD")
	cmd.Flags().Float64Var(&rank, "rank", 1, "target world population rank")
	return cmd
}

func newLifeExpectancyCmd(configPath, format *string) *cobra.Command {
	var region, sex, date string
	var age float64
	var total bool
	cmd := &cobra.Command{
		Use:   "life-expectancy",
		Short: "Remaining life expectancy at an age on a date, or --total life expectancy at birth for a date of birth",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			var v float64
			if total {
				// --total treats --date as the date of birth, per spec's
				// lifeExpectancyTotal(sex, region, dob) contract.
				v, err = eng.TotalLifeExpectancy(d, wppdata.Region(region), s)
			} else {
				v, err = eng.RemainingLifeExpectancy(d, wppdata.Region(region), s, age)
			}
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "life_expectancy", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD (date of birth when --total is set)")
	cmd.Flags().Float64Var(&age, "age", 0, "exact age in years")
	cmd.Flags().BoolVar(&total, "total", false, "report total life expectancy (at birth) instead of remaining")
	return cmd
}

func newTotalPopulationCmd(configPath, format *string) *cobra.Command {
	var region, sex, date string
	cmd := &cobra.Command{
		Use:   "total-population",
		Short: "Total population across the full age range, on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			v, err := eng.TotalPopulation(d, wppdata.Region(region), s)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "total_population", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD")
	return cmd
}

func newPopulationCountCmd(configPath, format *string) *cobra.Command {
	var region, sex, date string
	var age int
	cmd := &cobra.Command{
		Use:   "population-count",
		Short: "Population of an exact integer age (0..100), on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			v, err := eng.PopulationCount(d, wppdata.Region(region), s, age)
			if err != nil {
				return err
			}
			return emit(*format, &reportfmt.Result{Operation: "population_count", Region: region, Sex: sex, Date: d, Value: v, HasValue: true})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD")
	cmd.Flags().IntVar(&age, "age", 0, "exact integer age, 0..100")
	return cmd
}

func newMortalityCmd(configPath, format *string) *cobra.Command {
	var region, sex, date string
	var age int
	cmd := &cobra.Command{
		Use:   "mortality-distribution",
		Short: "5-year-bracket mortality distribution for an age, on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(*configPath)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			s, err := wppdata.ParseSex(sex)
			if err != nil {
				return err
			}
			buckets, err := eng.MortalityDistribution(d, wppdata.Region(region), s, age)
			if err != nil {
				return err
			}
			out := make([]reportfmt.Bucket, len(buckets))
			for i, b := range buckets {
				out[i] = reportfmt.Bucket{AgeFrom: b.AgeFrom, AgeTo: b.AgeTo, PercentOfDeaths: b.PercentOfDeaths}
			}
			return emit(*format, &reportfmt.Result{Operation: "mortality_distribution", Region: region, Sex: sex, Date: d, Buckets: out})
		},
	}
	cmd.Flags().StringVar(&region, "region", "World", "region name")
	cmd.Flags().StringVar(&sex, "sex", "both", "sex: male, female, or both")
	cmd.Flags().StringVar(&date, "date", "", "observation date, YYYY-MM-DD")
	cmd.Flags().IntVar(&age, "age", 0, "exact integer age")
	return cmd
}
