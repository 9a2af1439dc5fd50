// Package resolve turns filter criteria into backend request parameters.
package resolve

import (
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/matst80/car-finder/pkg/lookup"
	"github.com/matst80/car-finder/pkg/types"
)

// Resolve maps the slugs in c to vocabulary ids using t. Unresolvable values
// are left out of the result. The page is never included.
func Resolve(c types.FilterCriteria, t *lookup.Table) types.ResolvedQuery {
	params := make(map[string]string)
	for _, cat := range types.SingleCategories {
		value := c.Single(cat)
		if value == "" {
			continue
		}
		var id int
		var ok bool
		if cat == types.Models {
			id, ok = t.ModelId(c.Make, value)
		} else {
			id, ok = t.Id(cat, value)
		}
		if ok {
			params[string(cat)] = strconv.Itoa(id)
		}
	}
	if c.Doors != nil {
		params[types.ParamDoors] = strconv.Itoa(*c.Doors)
	}
	for _, p := range types.RangeParams {
		if v := c.Bound(p); v != nil {
			params[p] = strconv.Itoa(*v)
		}
	}
	if c.Search != "" {
		params[types.ParamSearch] = c.Search
	}
	if c.Vin != "" {
		params[types.ParamVin] = c.Vin
	}
	if c.Ordering.Valid() {
		params[types.ParamOrdering] = string(c.Ordering)
	}
	return types.ResolvedQuery{
		Params:           params,
		FeatureIds:       resolveIds(t, types.Features, c.Features),
		SafetyFeatureIds: resolveIds(t, types.SafetyFeatures, c.SafetyFeatures),
	}
}

func resolveIds(t *lookup.Table, cat types.Category, values []string) []int {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, ok := t.Id(cat, v)
		if !ok || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Key identifies a criteria and vocabulary pair. The page does not take part.
func Key(c types.FilterCriteria, t *lookup.Table) uint64 {
	c.Page = 0
	h := xxhash.New()
	_, _ = h.WriteString(c.Values().Encode())
	_, _ = h.WriteString("#")
	_, _ = h.WriteString(strconv.FormatUint(t.Version(), 16))
	return h.Sum64()
}

// Assembler memoizes the latest resolution so repeated reads of an unchanged
// state return the same query without walking the indexes again.
type Assembler struct {
	mu     sync.Mutex
	key    uint64
	has    bool
	result types.ResolvedQuery
	misses int
}

func (a *Assembler) Resolve(c types.FilterCriteria, t *lookup.Table) (types.ResolvedQuery, uint64) {
	key := Key(c, t)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.has && a.key == key {
		return a.result, key
	}
	a.result = Resolve(c, t)
	a.key = key
	a.has = true
	a.misses++
	return a.result, key
}

// Resolutions reports how many times the assembler actually resolved.
func (a *Assembler) Resolutions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.misses
}
