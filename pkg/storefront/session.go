// Package storefront ties the filter state, lookup tables, resolution and
// listing fetches together for one page view.
package storefront

import (
	"context"
	"log"
	"net/url"
	"sync"

	"github.com/matst80/car-finder/pkg/draft"
	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/lookup"
	"github.com/matst80/car-finder/pkg/resolve"
	"github.com/matst80/car-finder/pkg/types"
)

type Vocabularies interface {
	Load(ctx context.Context) (*types.Vocabulary, error)
	Current() *types.Vocabulary
}

// Snapshot is what a page view renders.
type Snapshot struct {
	Query      string               `json:"query"`
	Criteria   types.FilterCriteria `json:"criteria"`
	Resolved   types.ResolvedQuery  `json:"resolved"`
	Results    []types.Listing      `json:"results"`
	Count      int                  `json:"count"`
	Fetching   bool                 `json:"fetching"`
	Error      string               `json:"error,omitempty"`
	Pagination types.Pagination     `json:"pagination"`
	Breadcrumb []Crumb              `json:"breadcrumb"`
	Tab        Tab                  `json:"tab"`
	Vocabulary bool                 `json:"vocabulary_loaded"`
}

// Session is one page view. Every query mutation re-resolves the criteria
// and issues a listing fetch, the vocabulary arrives on its own.
type Session struct {
	ctx      context.Context
	query    *filterstate.MemoryQuery
	store    *filterstate.Store
	editor   *draft.Editor
	executor *listings.Executor
	vocab    Vocabularies
	tables   lookup.Cache
	resolver resolve.Assembler
	pageSize int

	mu          sync.Mutex
	vocabulary  *types.Vocabulary
	unsubscribe func()
	vocabDone   chan struct{}
}

func NewSession(ctx context.Context, rawQuery string, vocab Vocabularies, fetcher listings.Fetcher, pageSize int) *Session {
	return NewSessionWithExecutor(ctx, rawQuery, vocab, listings.NewExecutor(fetcher), pageSize)
}

func NewSessionWithExecutor(ctx context.Context, rawQuery string, vocab Vocabularies, executor *listings.Executor, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	q := filterstate.ParseQuery(rawQuery)
	s := &Session{
		ctx:       ctx,
		query:     q,
		store:     filterstate.NewStore(q),
		executor:  executor,
		vocab:     vocab,
		pageSize:  pageSize,
		vocabDone: make(chan struct{}),
	}
	s.editor = draft.NewEditor(s.store, labelerFunc(s.label))
	return s
}

type labelerFunc func(cat types.Category, id int) (string, bool)

func (f labelerFunc) Label(cat types.Category, id int) (string, bool) {
	return f(cat, id)
}

func (s *Session) table() *lookup.Table {
	s.mu.Lock()
	v := s.vocabulary
	s.mu.Unlock()
	return s.tables.Get(v)
}

func (s *Session) label(cat types.Category, id int) (string, bool) {
	return s.table().Label(cat, id)
}

func (s *Session) setVocabulary(v *types.Vocabulary) {
	s.mu.Lock()
	s.vocabulary = v
	s.mu.Unlock()
	s.store.SetLabeler(s.tables.Get(v))
}

// Start subscribes to query changes, issues the first fetch and loads the
// vocabulary in the background. The listing fetch is not held back by the
// vocabulary, it is re-issued once the vocabulary arrives.
func (s *Session) Start() {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.mu.Unlock()
		return
	}
	s.unsubscribe = s.query.Subscribe(func(url.Values) { s.refresh() })
	s.mu.Unlock()

	if v := s.vocab.Current(); v != nil {
		s.setVocabulary(v)
		close(s.vocabDone)
		s.refresh()
		return
	}
	s.refresh()
	go func() {
		defer close(s.vocabDone)
		v, err := s.vocab.Load(s.ctx)
		if err != nil {
			log.Printf("Listings stay unresolved without vocabulary: %v", err)
			return
		}
		_, before := s.resolved()
		s.setVocabulary(v)
		if _, after := s.resolved(); !after.Equal(before) {
			s.refresh()
		}
	}()
}

// Stop detaches from the query. In flight fetches still complete.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Wait blocks until the vocabulary load and every issued fetch are done.
func (s *Session) Wait() {
	s.mu.Lock()
	started := s.unsubscribe != nil
	s.mu.Unlock()
	if started {
		<-s.vocabDone
	}
	s.executor.Wait()
}

func (s *Session) resolved() (types.FilterCriteria, types.ResolvedQuery) {
	c := s.store.Read()
	rq, _ := s.resolver.Resolve(c, s.table())
	return c, rq
}

func (s *Session) refresh() {
	c, rq := s.resolved()
	s.executor.Issue(s.ctx, rq, c.Page)
}

// LoadVocabulary loads the vocabulary in the calling goroutine so ids can be
// used as filter inputs. A failed load leaves relational filters unresolved.
func (s *Session) LoadVocabulary(ctx context.Context) bool {
	v, err := s.vocab.Load(ctx)
	if err != nil {
		return false
	}
	s.setVocabulary(v)
	return true
}

// Sync loads the vocabulary and fetches the current page in the calling
// goroutine. Used by request scoped sessions that are never started.
func (s *Session) Sync(ctx context.Context) {
	s.LoadVocabulary(ctx)
	c, rq := s.resolved()
	s.executor.Do(ctx, rq, c.Page)
}

func (s *Session) Store() *filterstate.Store {
	return s.store
}

func (s *Session) Editor() *draft.Editor {
	return s.editor
}

func (s *Session) Query() *filterstate.MemoryQuery {
	return s.query
}

// SetTab switches the condition tab.
func (s *Session) SetTab(tab Tab) {
	s.store.SetMany(TabPatch(tab))
}

// Models lists the models for the draft make, or for the committed make
// when the editor is closed.
func (s *Session) Models() []types.Option {
	s.mu.Lock()
	v := s.vocabulary
	s.mu.Unlock()
	if s.editor.IsOpen() {
		return s.editor.Models(v)
	}
	return lookup.ModelsOf(v, s.store.Read().Make)
}

func (s *Session) Snapshot() Snapshot {
	c, rq := s.resolved()
	res, fetching := s.executor.Current()
	snap := Snapshot{
		Query:      s.store.Encode(),
		Criteria:   c,
		Resolved:   rq,
		Results:    []types.Listing{},
		Fetching:   fetching,
		Breadcrumb: Breadcrumb(c),
		Tab:        TabOf(c.Condition),
	}
	s.mu.Lock()
	snap.Vocabulary = s.vocabulary != nil
	s.mu.Unlock()
	if res.Err != nil {
		snap.Error = res.Err.Error()
	}
	if res.Data != nil {
		snap.Results = res.Data.Results
		snap.Count = res.Data.Count
	}
	snap.Pagination = types.NewPagination(c.Page, s.pageSize, snap.Count, types.DefaultPageWindow)
	return snap
}
