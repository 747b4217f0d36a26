// Package catalog keeps the latest generated calendar per year for the read API.
package catalog

import (
	"sort"
	"sync"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
)

type Catalog struct {
	mu    sync.RWMutex
	years map[int]*calendar.Result
}

func New() *Catalog {
	return &Catalog{years: map[int]*calendar.Result{}}
}

// Put replaces the result held for res.Year.
func (c *Catalog) Put(res *calendar.Result) {
	if res == nil {
		return
	}
	c.mu.Lock()
	c.years[res.Year] = res
	c.mu.Unlock()
}

func (c *Catalog) Get(year int) (*calendar.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.years[year]
	return res, ok
}

// Years lists the loaded years in ascending order.
func (c *Catalog) Years() []int {
	c.mu.RLock()
	out := make([]int, 0, len(c.years))
	for y := range c.years {
		out = append(out, y)
	}
	c.mu.RUnlock()
	sort.Ints(out)
	return out
}
