package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
)

func TestPutGetYears(t *testing.T) {
	c := New()
	c.Put(&calendar.Result{Year: 2025, Digest: "b"})
	c.Put(&calendar.Result{Year: 2024, Digest: "a"})
	c.Put(nil)

	assert.Equal(t, []int{2024, 2025}, c.Years())

	res, ok := c.Get(2024)
	require.True(t, ok)
	assert.Equal(t, "a", res.Digest)

	c.Put(&calendar.Result{Year: 2024, Digest: "c"})
	res, _ = c.Get(2024)
	assert.Equal(t, "c", res.Digest)

	_, ok = c.Get(1999)
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(y int) {
			defer wg.Done()
			c.Put(&calendar.Result{Year: 2000 + y%5})
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Years()
		}()
	}
	wg.Wait()
	assert.Len(t, c.Years(), 5)
}
