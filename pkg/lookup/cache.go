package lookup

import (
	"sync"

	"github.com/matst80/car-finder/pkg/types"
)

// Cache memoizes the table for the latest vocabulary snapshot and rebuilds it
// only when the snapshot fingerprint changes.
type Cache struct {
	mu    sync.Mutex
	table *Table
	built int
}

func (c *Cache) Get(v *types.Vocabulary) *Table {
	if v == nil {
		return nil
	}
	fp := v.Fingerprint()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil && c.table.version == fp {
		return c.table
	}
	c.table = Build(v)
	c.built++
	return c.table
}

// Builds reports how many times a table has been built.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}
