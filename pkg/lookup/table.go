// Package lookup builds the slug/id/label indexes used to translate the
// storefront query string into backend identifiers.
package lookup

import (
	"strconv"

	"github.com/matst80/car-finder/pkg/slug"
	"github.com/matst80/car-finder/pkg/types"
)

// Index maps slugs to ids and ids back to display labels for one category.
// When two labels share a slug the last one wins.
type Index struct {
	slugToId  map[string]int
	idToLabel map[int]string
}

func newIndex(options []types.Option) *Index {
	idx := &Index{
		slugToId:  make(map[string]int, len(options)),
		idToLabel: make(map[int]string, len(options)),
	}
	for _, o := range options {
		label := o.Label()
		idx.slugToId[slug.Slugify(label)] = o.Id
		idx.idToLabel[o.Id] = label
	}
	return idx
}

func (i *Index) Id(s string) (int, bool) {
	if i == nil || s == "" {
		return 0, false
	}
	id, ok := i.slugToId[slug.Slugify(s)]
	return id, ok
}

func (i *Index) Label(id int) (string, bool) {
	if i == nil {
		return "", false
	}
	l, ok := i.idToLabel[id]
	return l, ok
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.slugToId)
}

// ModelIndex additionally scopes model slugs by the owning make so that two
// makes can have a model with the same name.
type ModelIndex struct {
	*Index
	makeScoped map[string]int
}

func makeScopedKey(makeId int, modelSlug string) string {
	return strconv.Itoa(makeId) + ":" + modelSlug
}

func newModelIndex(options []types.Option) *ModelIndex {
	idx := &ModelIndex{
		Index:      newIndex(options),
		makeScoped: make(map[string]int, len(options)),
	}
	for _, o := range options {
		idx.makeScoped[makeScopedKey(o.MakeId(), slug.Slugify(o.Label()))] = o.Id
	}
	return idx
}

// ScopedId looks the model up under a known make only.
func (m *ModelIndex) ScopedId(makeId int, modelSlug string) (int, bool) {
	if m == nil || modelSlug == "" {
		return 0, false
	}
	id, ok := m.makeScoped[makeScopedKey(makeId, slug.Slugify(modelSlug))]
	return id, ok
}

// Table holds one index per category, built from a vocabulary snapshot.
// A nil *Table behaves like an empty vocabulary: every lookup misses.
type Table struct {
	version uint64
	indexes map[types.Category]*Index
	models  *ModelIndex
}

func Build(v *types.Vocabulary) *Table {
	t := &Table{
		version: v.Fingerprint(),
		indexes: make(map[types.Category]*Index, len(types.AllCategories)),
	}
	for _, cat := range types.AllCategories {
		if cat == types.Models {
			continue
		}
		t.indexes[cat] = newIndex(v.Options(cat))
	}
	t.models = newModelIndex(v.Options(types.Models))
	t.indexes[types.Models] = t.models.Index
	return t
}

// Version is the fingerprint of the vocabulary the table was built from.
func (t *Table) Version() uint64 {
	if t == nil {
		return 0
	}
	return t.version
}

func (t *Table) Index(cat types.Category) *Index {
	if t == nil {
		return nil
	}
	return t.indexes[cat]
}

func (t *Table) Id(cat types.Category, s string) (int, bool) {
	return t.Index(cat).Id(s)
}

func (t *Table) Label(cat types.Category, id int) (string, bool) {
	return t.Index(cat).Label(id)
}

// ModelId resolves a model slug, preferring the model owned by the given
// make when the make resolves, and falling back to the unscoped slug.
func (t *Table) ModelId(makeSlug, modelSlug string) (int, bool) {
	if t == nil || modelSlug == "" {
		return 0, false
	}
	if makeId, ok := t.Id(types.Makes, makeSlug); ok {
		if id, ok := t.models.ScopedId(makeId, modelSlug); ok {
			return id, true
		}
	}
	return t.models.Id(modelSlug)
}

// ModelsOf lists the model options owned by the make with the given slug.
func ModelsOf(v *types.Vocabulary, makeSlug string) []types.Option {
	if v == nil {
		return nil
	}
	if makeSlug == "" {
		return v.Models
	}
	res := make([]types.Option, 0)
	for _, m := range v.Models {
		if m.Make != nil && slug.Equal(m.Make.Label(), makeSlug) {
			res = append(res, m)
		}
	}
	return res
}
