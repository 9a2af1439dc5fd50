package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/types"
)

type gatedVocabulary struct {
	gate  chan struct{}
	err   error
	mu    sync.Mutex
	calls int
}

func (g *gatedVocabulary) FetchVocabulary(ctx context.Context) (*types.Vocabulary, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.gate != nil {
		<-g.gate
	}
	if g.err != nil {
		return nil, g.err
	}
	return types.MockVocabulary(), nil
}

type recordingFetcher struct {
	mu      sync.Mutex
	queries []types.ResolvedQuery
	pages   []int
}

func (f *recordingFetcher) FetchListings(ctx context.Context, rq types.ResolvedQuery, page int) (*types.ListingPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, rq)
	f.pages = append(f.pages, page)
	return &types.ListingPage{Count: 40, Results: []types.Listing{{Id: len(f.queries)}}}, nil
}

func (f *recordingFetcher) snapshot() ([]types.ResolvedQuery, []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.ResolvedQuery(nil), f.queries...), append([]int(nil), f.pages...)
}

func TestFirstFetchDoesNotWaitForVocabulary(t *testing.T) {
	vf := &gatedVocabulary{gate: make(chan struct{})}
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "make=ford&model=mustang&price_max=30000", NewVocabularyLoader(vf), f, 0)
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		q, _ := f.snapshot()
		return len(q) == 1
	}, time.Second, time.Millisecond)
	q, _ := f.snapshot()
	assert.Equal(t, map[string]string{"price_max": "30000"}, q[0].Params)

	close(vf.gate)
	s.Wait()

	q, _ = f.snapshot()
	require.Len(t, q, 2)
	assert.Equal(t, map[string]string{"make": "1", "model": "10", "price_max": "30000"}, q[1].Params)

	snap := s.Snapshot()
	assert.True(t, snap.Vocabulary)
	assert.False(t, snap.Fetching)
	assert.Equal(t, 2, snap.Results[0].Id)
}

func TestVocabularyWithoutRelationalFiltersDoesNotRefetch(t *testing.T) {
	vf := &gatedVocabulary{gate: make(chan struct{})}
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "price_min=100", NewVocabularyLoader(vf), f, 0)
	s.Start()
	close(vf.gate)
	s.Wait()

	q, _ := f.snapshot()
	assert.Len(t, q, 1)
}

func TestEveryMutationRefetches(t *testing.T) {
	loader := NewVocabularyLoader(&gatedVocabulary{})
	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "", loader, f, 0)
	s.Start()
	defer s.Stop()

	s.Store().SetMake(filterstate.Label("Toyota"))
	s.Store().SetModel(filterstate.Label("Supra"))
	s.Store().SetPage(2)
	s.Wait()

	q, pages := f.snapshot()
	require.Len(t, q, 4)
	assert.ElementsMatch(t, []int{1, 1, 1, 2}, pages)

	snap := s.Snapshot()
	assert.Equal(t, "20", snap.Resolved.Params["model"])
	assert.False(t, snap.Fetching)
	assert.Equal(t, "make=toyota&model=supra&page=2", snap.Query)
	assert.Equal(t, 2, snap.Pagination.Page)
	assert.Equal(t, "13–24 of 40 results", snap.Pagination.RangeText)
	assert.Equal(t, []int{1, 2, 3, 4}, snap.Pagination.Pages)
}

func TestVocabularyFailureKeepsListing(t *testing.T) {
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "make=ford", NewVocabularyLoader(&gatedVocabulary{err: errors.New("down")}), f, 0)
	s.Start()
	s.Wait()

	q, _ := f.snapshot()
	require.Len(t, q, 1)
	assert.Empty(t, q[0].Params)
	assert.False(t, s.Snapshot().Vocabulary)
}

func TestSetTab(t *testing.T) {
	loader := NewVocabularyLoader(&gatedVocabulary{})
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "condition=new&page=3&make=ford", loader, f, 0)
	s.Sync(context.Background())
	assert.Equal(t, TabNew, s.Snapshot().Tab)

	s.SetTab(TabUsed)
	assert.Equal(t, "condition=used&make=ford", s.Store().Encode())
	s.SetTab(TabAll)
	assert.Equal(t, "make=ford", s.Store().Encode())
	assert.Equal(t, TabAll, TabOf(s.Store().Read().Condition))
}

func TestSyncResolvesWithVocabulary(t *testing.T) {
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "make=toyota&model=supra&features=sunroof", NewVocabularyLoader(&gatedVocabulary{}), f, 0)
	s.Sync(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, "20", snap.Resolved.Params["model"])
	assert.Equal(t, []int{2}, snap.Resolved.FeatureIds)
	assert.Equal(t, 40, snap.Count)
	assert.Len(t, snap.Breadcrumb, 4)
}

func TestSessionModels(t *testing.T) {
	f := &recordingFetcher{}
	s := NewSession(context.Background(), "make=ford", NewVocabularyLoader(&gatedVocabulary{}), f, 0)
	s.Sync(context.Background())
	assert.Len(t, s.Models(), 2)

	s.Editor().Open()
	s.Editor().Select(types.Makes, filterstate.Id(3))
	models := s.Models()
	require.Len(t, models, 1)
	assert.Equal(t, "Range Rover", models[0].Name)
}

func TestLoaderCollapsesConcurrentLoads(t *testing.T) {
	vf := &gatedVocabulary{gate: make(chan struct{})}
	loader := NewVocabularyLoader(vf)
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := loader.Load(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, v)
		}()
	}
	assert.Eventually(t, func() bool {
		vf.mu.Lock()
		defer vf.mu.Unlock()
		return vf.calls == 1
	}, time.Second, time.Millisecond)
	close(vf.gate)
	wg.Wait()

	assert.Equal(t, 1, vf.calls)
	assert.NotNil(t, loader.Current())
}

func TestLoaderUsesCache(t *testing.T) {
	c := cache.NewCache(cache.NewMemoryStore(), time.Minute)
	first := NewVocabularyLoader(&gatedVocabulary{}).WithCache(c, time.Hour)
	_, err := first.Load(context.Background())
	require.NoError(t, err)

	vf := &gatedVocabulary{err: errors.New("should not be called")}
	second := NewVocabularyLoader(vf).WithCache(c, time.Hour)
	v, err := second.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ford", v.Makes[0].Name)
	assert.Equal(t, 0, vf.calls)

	second.Invalidate(context.Background())
	assert.Nil(t, second.Current())
	_, err = second.Load(context.Background())
	assert.Error(t, err)
}

type flakyFetcher struct {
	recordingFetcher
	mu      sync.Mutex
	failing bool
}

func (f *flakyFetcher) setFailing(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = v
}

func (f *flakyFetcher) FetchListings(ctx context.Context, rq types.ResolvedQuery, page int) (*types.ListingPage, error) {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return nil, errors.New("backend down")
	}
	return f.recordingFetcher.FetchListings(ctx, rq, page)
}

func TestFailedFetchKeepsShownListings(t *testing.T) {
	loader := NewVocabularyLoader(&gatedVocabulary{})
	f := &flakyFetcher{}
	s := NewSession(context.Background(), "make=ford", loader, f, 0)
	s.Start()
	defer s.Stop()
	s.Wait()

	f.setFailing(true)
	s.Store().SetColor(filterstate.Label("Red"))
	s.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "backend down", snap.Error)
	assert.False(t, snap.Fetching)
	assert.Equal(t, 40, snap.Count)
	assert.Len(t, snap.Results, 1)
}
