package reportfmt

import (
	"fmt"
	"strings"
)

// ConsoleFormatter renders a Result as a short human-readable summary,
// the default for interactive CLI use.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(r *Result) ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  region=%s sex=%s date=%s\n", r.Operation, r.Region, r.Sex, r.Date.Format("2006-01-02"))
	if r.HasValue {
		fmt.Fprintf(&sb, "  value: %.2f\n", r.Value)
	}
	for _, b := range r.Buckets {
		fmt.Fprintf(&sb, "  [%3d-%3d) %6.2f%%\n", b.AgeFrom, b.AgeTo, b.PercentOfDeaths)
	}
	return []byte(sb.String()), nil
}
