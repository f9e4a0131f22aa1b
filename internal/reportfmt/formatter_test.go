package reportfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Operation: "pop_age",
		Region:    "World",
		Sex:       "both",
		Date:      time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
		Value:     7_800_000_000,
		HasValue:  true,
	}
}

func TestGetFormatterByNameResolvesAliases(t *testing.T) {
	f := GetFormatterByName("plain")
	require.NotNil(t, f)
	assert.Equal(t, "console", f.Name())
}

func TestGetFormatterByNameUnknown(t *testing.T) {
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestJSONFormatterOmitsValueWhenAbsent(t *testing.T) {
	r := sampleResult()
	r.HasValue = false
	r.Value = 0
	out, err := JSONFormatter{}.Format(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"value"`)
}

func TestCSVFormatterRendersBucketsWhenPresent(t *testing.T) {
	r := sampleResult()
	r.HasValue = false
	r.Buckets = []Bucket{{AgeFrom: 60, AgeTo: 65, PercentOfDeaths: 12.5}}
	out, err := CSVFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "age_from,age_to,percent_of_deaths")
	assert.Contains(t, string(out), "60,65,12.5000")
}

func TestAvailableFormatterNamesSorted(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "json"}, names)
}
