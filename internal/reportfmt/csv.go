package reportfmt

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter renders a Result as a small CSV table: a single scalar
// row for value-shaped results, or one row per age bracket for
// mortality-distribution results.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(r.Buckets) > 0 {
		if err := w.Write([]string{"age_from", "age_to", "percent_of_deaths"}); err != nil {
			return nil, err
		}
		for _, b := range r.Buckets {
			row := []string{
				strconv.Itoa(b.AgeFrom),
				strconv.Itoa(b.AgeTo),
				strconv.FormatFloat(b.PercentOfDeaths, 'f', 4, 64),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{"operation", "region", "sex", "date", "value"}); err != nil {
			return nil, err
		}
		value := ""
		if r.HasValue {
			value = strconv.FormatFloat(r.Value, 'f', 4, 64)
		}
		row := []string{r.Operation, r.Region, r.Sex, r.Date.Format("2006-01-02"), value}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
