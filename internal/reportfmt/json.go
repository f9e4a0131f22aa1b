package reportfmt

import "encoding/json"

// JSONFormatter renders a Result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(r *Result) ([]byte, error) {
	payload := struct {
		Operation string   `json:"operation"`
		Region    string   `json:"region"`
		Sex       string   `json:"sex"`
		Date      string   `json:"date"`
		Value     *float64 `json:"value,omitempty"`
		Buckets   []Bucket `json:"buckets,omitempty"`
	}{
		Operation: r.Operation,
		Region:    r.Region,
		Sex:       r.Sex,
		Date:      r.Date.Format("2006-01-02"),
		Buckets:   r.Buckets,
	}
	if r.HasValue {
		payload.Value = &r.Value
	}
	return json.MarshalIndent(payload, "", "  ")
}
