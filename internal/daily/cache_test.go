package daily

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpop-io/wpp-engine/internal/wppdata"
)

type countingFactory struct {
	builds int32
}

type fakeInterpolator struct{ v float64 }

func (f fakeInterpolator) Evaluate(age, date float64) (float64, error) { return f.v, nil }
func (f fakeInterpolator) Integrate(af, at, df, dt float64) (float64, error) { return f.v, nil }

func (c *countingFactory) Build(region wppdata.Region, sex wppdata.Sex) (Interpolator, error) {
	atomic.AddInt32(&c.builds, 1)
	return fakeInterpolator{v: 1}, nil
}

func TestCacheBuildsAtMostOncePerKey(t *testing.T) {
	factory := &countingFactory{}
	cache := NewCache(factory)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get("World", wppdata.Both)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&factory.builds))
}

func TestCacheBuildsIndependentlyPerKey(t *testing.T) {
	factory := &countingFactory{}
	cache := NewCache(factory)

	_, err := cache.Get("World", wppdata.Male)
	require.NoError(t, err)
	_, err = cache.Get("World", wppdata.Female)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&factory.builds))
	assert.Equal(t, 2, cache.Len())
}
