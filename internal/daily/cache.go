// Package daily implements the lazily-built, per-(region,sex) daily
// population interpolator cache (C4). Interpolators are expensive to
// build (a bicubic fit over the full age x year grid) and cheap to
// reuse, so the cache guarantees at most one build per key even under
// concurrent access, publishing the built value (or the build error)
// to every caller waiting on that key.
package daily

import (
	"sync"

	"github.com/worldpop-io/wpp-engine/internal/wppdata"
)

// Interpolator evaluates and integrates a single (region, sex) daily
// population surface, built from the C1 annual grid via a bicubic
// spline. Ages and dates are both expressed as continuous day offsets
// (age in days, date as an epoch-day count) so evaluation can land
// anywhere inside the knot rectangle, not just on year boundaries.
type Interpolator interface {
	Evaluate(ageDays, dateDays float64) (float64, error)
	Integrate(ageFromDays, ageToDays, dateFromDays, dateToDays float64) (float64, error)
}

// Factory builds an Interpolator for a given (region, sex) pair. The
// daily package depends only on this interface, not on the algorithm
// package that implements it — the original Python datastore instead
// had the data layer call back into the algorithm layer via a
// registerTableBuilder callback, a cyclic dependency this interface
// exists to break.
type Factory interface {
	Build(region wppdata.Region, sex wppdata.Sex) (Interpolator, error)
}

type key struct {
	region wppdata.Region
	sex    wppdata.Sex
}

type entry struct {
	once  sync.Once
	value Interpolator
	err   error
}

// Cache is the C4 component: a concurrency-safe, lazily-populated map
// from (region, sex) to its built Interpolator.
type Cache struct {
	factory Factory

	mu      sync.Mutex
	entries map[key]*entry
}

// NewCache builds an empty cache backed by the given factory.
func NewCache(factory Factory) *Cache {
	return &Cache{factory: factory, entries: make(map[key]*entry)}
}

// Get returns the Interpolator for (region, sex), building it on first
// request. Concurrent callers requesting the same key block on the
// same build rather than racing to build duplicates; callers
// requesting different keys proceed independently.
func (c *Cache) Get(region wppdata.Region, sex wppdata.Sex) (Interpolator, error) {
	k := key{region: region, sex: sex}

	c.mu.Lock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = c.factory.Build(region, sex)
	})
	return e.value, e.err
}

// Len reports how many (region, sex) interpolators have been
// requested (built or attempted) so far. Exposed for tests and
// diagnostics, not part of the query surface.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
