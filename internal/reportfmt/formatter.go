package reportfmt

import (
	"sort"
	"strings"
)

// Formatter renders a Result to bytes. Implementations must be pure.
type Formatter interface {
	Format(r *Result) ([]byte, error)
	Name() string
}

var builtInFormatters = []Formatter{
	JSONFormatter{},
	CSVFormatter{},
	ConsoleFormatter{},
}

// GetFormatterByName fetches a registered formatter by its canonical
// name or a recognized alias.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

var aliasMap = map[string]string{
	"text":  "console",
	"plain": "console",
}

// NormalizeFormatName lowers the name and resolves known aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}
