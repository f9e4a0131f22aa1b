package wppdata

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Logger is the minimal logging surface the loaders use for
// skip-and-continue diagnostics on malformed rows.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLoaderLogger discards all loader log output.
type NopLoaderLogger struct{}

func (NopLoaderLogger) Debugf(string, ...any) {}
func (NopLoaderLogger) Warnf(string, ...any)  {}

// LoadPopulationCSV reads the annual population table from a CSV with
// header "Location,Time,Age,PopMale,PopFemale,PopTotal", values in
// thousands. Malformed rows are skipped and logged, not fatal.
func LoadPopulationCSV(path string, log Logger) (*PopulationTable, error) {
	if log == nil {
		log = NopLoaderLogger{}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening population CSV %q", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading population CSV header")
	}
	idx, err := columnIndex(header, "Location", "Time", "Age", "PopMale", "PopFemale", "PopTotal")
	if err != nil {
		return nil, err
	}

	type rawRow struct {
		region      string
		year, age   int
		male, female, total float64
	}
	var rows []rawRow
	ageMin, ageMax := 1<<30, -(1 << 30)
	yearMin, yearMax := 1<<30, -(1 << 30)

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("population CSV: skipping unreadable row: %v", err)
			continue
		}
		year, errY := strconv.Atoi(strings.TrimSpace(rec[idx["Time"]]))
		age, errA := strconv.Atoi(strings.TrimSpace(rec[idx["Age"]]))
		male, errM := strconv.ParseFloat(strings.TrimSpace(rec[idx["PopMale"]]), 64)
		female, errF := strconv.ParseFloat(strings.TrimSpace(rec[idx["PopFemale"]]), 64)
		total, errT := strconv.ParseFloat(strings.TrimSpace(rec[idx["PopTotal"]]), 64)
		if errY != nil || errA != nil || errM != nil || errF != nil || errT != nil {
			log.Warnf("population CSV: skipping row with unparseable field(s): %v", rec)
			continue
		}
		rows = append(rows, rawRow{
			region: rec[idx["Location"]], year: year, age: age,
			male: male * 1000, female: female * 1000, total: total * 1000,
		})
		if age < ageMin {
			ageMin = age
		}
		if age > ageMax {
			ageMax = age
		}
		if year < yearMin {
			yearMin = year
		}
		if year > yearMax {
			yearMax = year
		}
	}
	if len(rows) == 0 {
		return nil, errors.New("population CSV: no usable rows")
	}

	table := NewPopulationTable(ageMin, ageMax, yearMin, yearMax)
	for _, row := range rows {
		table.Set(Region(row.region), Male, row.age, row.year, row.male)
		table.Set(Region(row.region), Female, row.age, row.year, row.female)
		table.Set(Region(row.region), Both, row.age, row.year, row.total)
	}
	log.Debugf("population CSV: loaded %d rows across %d regions", len(rows), len(table.Regions()))
	return table, nil
}

// LoadLifeExpectancyCSV reads the life-expectancy table from a CSV
// with header "Location,Sex,PeriodBegin,PeriodEnd,Age,Value".
func LoadLifeExpectancyCSV(path string, log Logger) (*LifeExpectancyTable, error) {
	if log == nil {
		log = NopLoaderLogger{}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening life-expectancy CSV %q", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading life-expectancy CSV header")
	}
	idx, err := columnIndex(header, "Location", "Sex", "PeriodBegin", "PeriodEnd", "Age", "Value")
	if err != nil {
		return nil, err
	}

	type key struct {
		region string
		sex    Sex
		begin  time.Time
	}
	grouped := map[key]*LifeExpectancyRow{}
	var order []key

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("life-expectancy CSV: skipping unreadable row: %v", err)
			continue
		}
		sex, errS := ParseSex(strings.TrimSpace(rec[idx["Sex"]]))
		begin, errB := time.Parse("2006-01-02", strings.TrimSpace(rec[idx["PeriodBegin"]]))
		end, errE := time.Parse("2006-01-02", strings.TrimSpace(rec[idx["PeriodEnd"]]))
		age, errA := strconv.Atoi(strings.TrimSpace(rec[idx["Age"]]))
		val, errV := strconv.ParseFloat(strings.TrimSpace(rec[idx["Value"]]), 64)
		if errS != nil || errB != nil || errE != nil || errA != nil || errV != nil {
			log.Warnf("life-expectancy CSV: skipping row with unparseable field(s): %v", rec)
			continue
		}
		k := key{region: rec[idx["Location"]], sex: sex, begin: begin}
		row, ok := grouped[k]
		if !ok {
			row = &LifeExpectancyRow{Region: Region(k.region), Sex: sex, PeriodBegin: begin, PeriodEnd: end}
			grouped[k] = row
			order = append(order, k)
		}
		row.Ages = append(row.Ages, age)
		row.Values = append(row.Values, val)
	}

	table := NewLifeExpectancyTable()
	for _, k := range order {
		table.Add(*grouped[k])
	}
	log.Debugf("life-expectancy CSV: loaded %d period rows", len(order))
	return table, nil
}

// LoadSurvivalRatioCSV reads the survival-ratio table from a CSV with
// header "Location,Sex,PeriodBegin,PeriodEnd,AgeBracket,Ratio".
func LoadSurvivalRatioCSV(path string, log Logger) (*SurvivalTable, error) {
	if log == nil {
		log = NopLoaderLogger{}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening survival-ratio CSV %q", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading survival-ratio CSV header")
	}
	idx, err := columnIndex(header, "Location", "Sex", "PeriodBegin", "PeriodEnd", "AgeBracket", "Ratio")
	if err != nil {
		return nil, err
	}

	type key struct {
		region string
		sex    Sex
		begin  time.Time
	}
	grouped := map[key]*SurvivalRow{}
	var order []key

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("survival-ratio CSV: skipping unreadable row: %v", err)
			continue
		}
		sex, errS := ParseSex(strings.TrimSpace(rec[idx["Sex"]]))
		begin, errB := time.Parse("2006-01-02", strings.TrimSpace(rec[idx["PeriodBegin"]]))
		end, errE := time.Parse("2006-01-02", strings.TrimSpace(rec[idx["PeriodEnd"]]))
		bracket, errA := strconv.Atoi(strings.TrimSpace(rec[idx["AgeBracket"]]))
		ratio, errV := strconv.ParseFloat(strings.TrimSpace(rec[idx["Ratio"]]), 64)
		if errS != nil || errB != nil || errE != nil || errA != nil || errV != nil {
			log.Warnf("survival-ratio CSV: skipping row with unparseable field(s): %v", rec)
			continue
		}
		k := key{region: rec[idx["Location"]], sex: sex, begin: begin}
		row, ok := grouped[k]
		if !ok {
			row = &SurvivalRow{Region: Region(k.region), Sex: sex, PeriodBegin: begin, PeriodEnd: end}
			grouped[k] = row
			order = append(order, k)
		}
		row.AgeBrackets = append(row.AgeBrackets, bracket)
		row.Ratios = append(row.Ratios, ratio)
	}

	table := NewSurvivalTable()
	for _, k := range order {
		table.Add(*grouped[k])
	}
	log.Debugf("survival-ratio CSV: loaded %d period rows", len(order))
	return table, nil
}

func columnIndex(header []string, want ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.Trim(h, "\"﻿"))] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, errors.Errorf("CSV missing required column %q", w)
		}
	}
	return idx, nil
}
