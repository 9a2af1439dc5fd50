package draft

import (
	"slices"
	"strings"
	"sync"

	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/slug"
	"github.com/matst80/car-finder/pkg/types"
)

// Committer is the part of the filter store the editor writes to.
type Committer interface {
	Read() types.FilterCriteria
	SetMany(p filterstate.Patch)
}

// Editor keeps a draft while the filter modal is open. Nothing reaches the
// store until Apply or ClearLocal.
type Editor struct {
	mu     sync.Mutex
	store  Committer
	labels filterstate.Labeler
	open   bool
	draft  Draft
}

func NewEditor(store Committer, labels filterstate.Labeler) *Editor {
	return &Editor{store: store, labels: labels}
}

// Open seeds the draft from the store on the closed to open transition.
// Opening an already open editor keeps the pending edits.
func (e *Editor) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.open {
		return
	}
	e.draft = FromCriteria(e.store.Read())
	e.open = true
}

func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Dismiss closes the modal and drops pending edits.
func (e *Editor) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.draft = Draft{}
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.draft
	d.Features = slices.Clone(d.Features)
	d.SafetyFeatures = slices.Clone(d.SafetyFeatures)
	return d
}

// Select sets a single-choice field. Changing the make drops the model.
func (e *Editor) Select(cat types.Category, v filterstate.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	field := e.draft.single(cat)
	if field == nil {
		return
	}
	next := v.Slug(cat, e.labels)
	if cat == types.Makes && next != *field {
		e.draft.Model = ""
	}
	*field = next
}

// Toggle adds or removes a value from a multi-choice field.
func (e *Editor) Toggle(cat types.Category, v filterstate.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	field := e.draft.multi(cat)
	if field == nil {
		return
	}
	s := v.Slug(cat, e.labels)
	if s == "" {
		return
	}
	if idx := slices.Index(*field, s); idx >= 0 {
		*field = slices.Delete(slices.Clone(*field), idx, idx+1)
		return
	}
	*field = append(slices.Clone(*field), s)
}

// SetNumber stores the digits of raw for doors or one of the range bounds.
func (e *Editor) SetNumber(param string, raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if field := e.draft.number(param); field != nil {
		*field = Digits(raw)
	}
}

func (e *Editor) SetVin(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Vin = strings.TrimSpace(raw)
}

// SetOrdering accepts canonical orderings and their aliases. Anything else
// clears the draft ordering.
func (e *Editor) SetOrdering(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Ordering = string(types.NormalizeOrdering(raw))
}

// Fill replaces the draft with d, normalizing every field the way the
// individual setters do.
func (e *Editor) Fill(d Draft) {
	next := Draft{
		Vin:            strings.TrimSpace(d.Vin),
		Ordering:       string(types.NormalizeOrdering(d.Ordering)),
		Features:       slugSet(d.Features),
		SafetyFeatures: slugSet(d.SafetyFeatures),
	}
	for _, cat := range types.SingleCategories {
		*next.single(cat) = slug.Slugify(*d.single(cat))
	}
	for _, param := range numberParams {
		*next.number(param) = Digits(*d.number(param))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = next
}

func slugSet(values []string) []string {
	res := make([]string, 0, len(values))
	for _, v := range values {
		s := slug.Slugify(v)
		if s != "" && !slices.Contains(res, s) {
			res = append(res, s)
		}
	}
	return res
}

// Apply commits the draft in one store mutation and closes the modal.
func (e *Editor) Apply() {
	e.mu.Lock()
	d := e.draft
	e.open = false
	e.draft = Draft{}
	e.mu.Unlock()
	e.store.SetMany(d.Patch())
}

// ClearLocal empties the draft and commits the cleared fields. The modal
// stays open. The free-text search, the condition tab and the ordering are
// not modal filters and keep their committed values.
func (e *Editor) ClearLocal() {
	committed := e.store.Read()
	e.mu.Lock()
	e.draft = Draft{
		Condition:      committed.Condition,
		Ordering:       string(committed.Ordering),
		Features:       []string{},
		SafetyFeatures: []string{},
	}
	p := e.draft.Patch()
	e.mu.Unlock()
	p.Condition = filterstate.Change[filterstate.Value]{}
	p.Ordering = filterstate.Change[types.Ordering]{}
	e.store.SetMany(p)
}

// Models lists the models selectable for the draft's make.
func (e *Editor) Models(v *types.Vocabulary) []types.Option {
	d := e.Draft()
	return d.ModelsFor(v)
}
