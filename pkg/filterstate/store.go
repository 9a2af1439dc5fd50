// Package filterstate keeps the storefront filter, sort and page state in
// the query string and exposes typed setters for it.
package filterstate

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/matst80/car-finder/pkg/types"
)

// Store is the single source of truth for filter state. Every setter is one
// atomic rewrite of the query string. Setting anything but the page drops
// the page parameter.
type Store struct {
	query Query

	mu     sync.RWMutex
	labels Labeler
}

func NewStore(q Query) *Store {
	return &Store{query: q}
}

// SetLabeler installs the id to label mapping used for id inputs. Until a
// labeler is set, id inputs clear the field.
func (s *Store) SetLabeler(l Labeler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = l
}

func (s *Store) labeler() Labeler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels
}

func (s *Store) Read() types.FilterCriteria {
	return Decode(s.query.Values())
}

// Encode returns the current query string.
func (s *Store) Encode() string {
	return s.query.Values().Encode()
}

func resetPage(q url.Values) {
	q.Del(types.ParamPage)
}

func setPage(q url.Values, page int) {
	if page <= 1 {
		q.Del(types.ParamPage)
		return
	}
	q.Set(types.ParamPage, strconv.Itoa(page))
}

func setSlug(q url.Values, key, value string) {
	if value == "" {
		q.Del(key)
		return
	}
	q.Set(key, value)
}

func setNumber(q url.Values, key string, value *int) {
	if value == nil {
		q.Del(key)
		return
	}
	q.Set(key, strconv.Itoa(*value))
}

func setText(q url.Values, key, value string) {
	setSlug(q, key, strings.TrimSpace(value))
}

func setOrdering(q url.Values, o types.Ordering) {
	if !o.Valid() {
		q.Del(types.ParamOrdering)
		return
	}
	q.Set(types.ParamOrdering, string(o))
}

func applySingle(q url.Values, cat types.Category, v Value, labels Labeler) {
	value := v.Slug(cat, labels)
	setSlug(q, string(cat), value)
	if cat == types.Makes && value == "" {
		q.Del(string(types.Models))
	}
}

func applyMulti(q url.Values, cat types.Category, values []Value, labels Labeler) {
	q.Del(string(cat))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		value := v.Slug(cat, labels)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		q.Add(string(cat), value)
	}
}

// SetPage changes the page only. Pages below 2 remove the parameter.
func (s *Store) SetPage(page int) {
	s.query.Update(func(q url.Values) {
		setPage(q, page)
	})
}

// SetSingle writes a single valued category. Clearing the make also clears
// the model.
func (s *Store) SetSingle(cat types.Category, v Value) {
	if cat.Multi() {
		return
	}
	labels := s.labeler()
	s.query.Update(func(q url.Values) {
		applySingle(q, cat, v, labels)
		resetPage(q)
	})
}

func (s *Store) SetMake(v Value)         { s.SetSingle(types.Makes, v) }
func (s *Store) SetModel(v Value)        { s.SetSingle(types.Models, v) }
func (s *Store) SetColor(v Value)        { s.SetSingle(types.Colors, v) }
func (s *Store) SetTransmission(v Value) { s.SetSingle(types.Transmissions, v) }
func (s *Store) SetCondition(v Value)    { s.SetSingle(types.Conditions, v) }
func (s *Store) SetFuelType(v Value)     { s.SetSingle(types.FuelTypes, v) }
func (s *Store) SetDriveType(v Value)    { s.SetSingle(types.DriveTypes, v) }
func (s *Store) SetCarType(v Value)      { s.SetSingle(types.CarTypes, v) }

func (s *Store) SetDoors(n *int) {
	s.query.Update(func(q url.Values) {
		setNumber(q, types.ParamDoors, n)
		resetPage(q)
	})
}

// SetRange writes one range bound; nil removes it. Unknown parameters are
// ignored.
func (s *Store) SetRange(param string, n *int) {
	if !slices.Contains(types.RangeParams, param) {
		return
	}
	s.query.Update(func(q url.Values) {
		setNumber(q, param, n)
		resetPage(q)
	})
}

func (s *Store) SetPriceMin(n *int)     { s.SetRange(types.ParamPriceMin, n) }
func (s *Store) SetPriceMax(n *int)     { s.SetRange(types.ParamPriceMax, n) }
func (s *Store) SetMileageMin(n *int)   { s.SetRange(types.ParamMileageMin, n) }
func (s *Store) SetMileageMax(n *int)   { s.SetRange(types.ParamMileageMax, n) }
func (s *Store) SetCylindersMin(n *int) { s.SetRange(types.ParamCylindersMin, n) }
func (s *Store) SetCylindersMax(n *int) { s.SetRange(types.ParamCylindersMax, n) }
func (s *Store) SetYearMin(n *int)      { s.SetRange(types.ParamYearMin, n) }
func (s *Store) SetYearMax(n *int)      { s.SetRange(types.ParamYearMax, n) }

func (s *Store) SetSearch(text string) {
	s.query.Update(func(q url.Values) {
		setText(q, types.ParamSearch, text)
		resetPage(q)
	})
}

func (s *Store) SetVin(text string) {
	s.query.Update(func(q url.Values) {
		setText(q, types.ParamVin, text)
		resetPage(q)
	})
}

// SetMulti replaces the whole repeated group of a multi valued category.
func (s *Store) SetMulti(cat types.Category, values []Value) {
	if !cat.Multi() {
		return
	}
	labels := s.labeler()
	s.query.Update(func(q url.Values) {
		applyMulti(q, cat, values, labels)
		resetPage(q)
	})
}

// ToggleMulti adds the value when absent and removes it when present.
// Values that do not resolve to a slug leave the state untouched.
func (s *Store) ToggleMulti(cat types.Category, v Value) {
	if !cat.Multi() {
		return
	}
	value := v.Slug(cat, s.labeler())
	if value == "" {
		return
	}
	s.query.Update(func(q url.Values) {
		current := splitMulti(q[string(cat)])
		if i := slices.Index(current, value); i >= 0 {
			current = slices.Delete(current, i, i+1)
		} else {
			current = append(current, value)
		}
		q.Del(string(cat))
		for _, c := range current {
			q.Add(string(cat), c)
		}
		resetPage(q)
	})
}

func (s *Store) SetFeatures(values []Value)       { s.SetMulti(types.Features, values) }
func (s *Store) ToggleFeature(v Value)            { s.ToggleMulti(types.Features, v) }
func (s *Store) SetSafetyFeatures(values []Value) { s.SetMulti(types.SafetyFeatures, values) }
func (s *Store) ToggleSafetyFeature(v Value)      { s.ToggleMulti(types.SafetyFeatures, v) }

// SetOrdering writes the ordering, values outside the accepted set remove
// the parameter.
func (s *Store) SetOrdering(o types.Ordering) {
	s.query.Update(func(q url.Values) {
		setOrdering(q, o)
		resetPage(q)
	})
}

// SetMany applies the present entries of the patch in one rewrite. The page
// is reset unless the patch carries one.
func (s *Store) SetMany(p Patch) {
	labels := s.labeler()
	s.query.Update(func(q url.Values) {
		for _, cat := range types.SingleCategories {
			if c := p.single(cat); c.Present {
				setSlug(q, string(cat), c.Value.Slug(cat, labels))
			}
		}
		if p.Make.Present && p.Make.Value.Slug(types.Makes, labels) == "" {
			q.Del(string(types.Models))
		}
		if p.Doors.Present {
			setNumber(q, types.ParamDoors, p.Doors.Value)
		}
		for _, param := range types.RangeParams {
			if c := p.bound(param); c.Present {
				setNumber(q, param, c.Value)
			}
		}
		if p.Search.Present {
			setText(q, types.ParamSearch, p.Search.Value)
		}
		if p.Vin.Present {
			setText(q, types.ParamVin, p.Vin.Value)
		}
		if p.Features.Present {
			applyMulti(q, types.Features, p.Features.Value, labels)
		}
		if p.SafetyFeatures.Present {
			applyMulti(q, types.SafetyFeatures, p.SafetyFeatures.Value, labels)
		}
		if p.Ordering.Present {
			setOrdering(q, p.Ordering.Value)
		}
		if p.Page.Present {
			setPage(q, p.Page.Value)
		} else {
			resetPage(q)
		}
	})
}

// ClearAll removes every parameter.
func (s *Store) ClearAll() {
	s.query.Update(func(q url.Values) {
		for k := range q {
			delete(q, k)
		}
	})
}
