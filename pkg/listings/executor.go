package listings

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carfinder_listing_fetches_total",
		Help: "The total number of listing fetches issued",
	})
	fetchesStale = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carfinder_listing_fetches_stale_total",
		Help: "Listing responses discarded because a newer request was issued",
	})
	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carfinder_listing_fetch_errors_total",
		Help: "Listing fetches that failed",
	})
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "carfinder_listing_fetch_seconds",
		Help:    "Time spent fetching a page of listings",
		Buckets: prometheus.DefBuckets,
	})
)

type Fetcher interface {
	FetchListings(ctx context.Context, rq types.ResolvedQuery, page int) (*types.ListingPage, error)
}

// Result is the outcome of one sequenced fetch.
type Result struct {
	Seq   uint64              `json:"seq"`
	Page  int                 `json:"page"`
	Data  *types.ListingPage  `json:"data,omitempty"`
	Err   error               `json:"-"`
	Query types.ResolvedQuery `json:"-"`
}

// Executor tags every fetch with an increasing sequence number and applies a
// response only when it belongs to the latest issued request. Superseded
// requests are not cancelled, their responses are dropped. A failed latest
// request keeps the previously applied listings and only records the error.
type Executor struct {
	fetcher Fetcher
	pages   *cache.Helper[types.ListingPage]
	ttl     time.Duration
	seq     atomic.Uint64

	mu      sync.Mutex
	current Result
	onApply []func(Result)
	wg      sync.WaitGroup
}

func NewExecutor(fetcher Fetcher) *Executor {
	return &Executor{fetcher: fetcher}
}

// WithCache serves repeated page requests from c for ttl.
func (e *Executor) WithCache(c *cache.Cache, ttl time.Duration) *Executor {
	e.pages = cache.NewHelper[types.ListingPage](c)
	e.ttl = ttl
	return e
}

// OnApply registers fn to run after a result has been applied.
func (e *Executor) OnApply(fn func(Result)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onApply = append(e.onApply, fn)
}

// Latest returns the sequence number of the last issued request.
func (e *Executor) Latest() uint64 {
	return e.seq.Load()
}

// Current returns the applied result and whether a newer request is in
// flight.
func (e *Executor) Current() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.current.Seq != e.seq.Load()
}

func (e *Executor) fetch(ctx context.Context, rq types.ResolvedQuery, page int) (*types.ListingPage, error) {
	start := time.Now()
	defer func() { fetchDuration.Observe(time.Since(start).Seconds()) }()
	if e.pages == nil {
		return e.fetcher.FetchListings(ctx, rq, page)
	}
	key := "listings:" + strconv.FormatUint(rq.Key(page), 16)
	res, err := e.pages.Handle(ctx, key, e.ttl, func(ctx context.Context) (types.ListingPage, error) {
		p, err := e.fetcher.FetchListings(ctx, rq, page)
		if err != nil {
			return types.ListingPage{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Do runs a sequenced fetch and reports whether its result was applied.
// Failed fetches are never applied.
func (e *Executor) Do(ctx context.Context, rq types.ResolvedQuery, page int) (Result, bool) {
	seq := e.seq.Add(1)
	return e.run(ctx, seq, rq, page)
}

// Issue starts a sequenced fetch in the background and returns its sequence
// number.
func (e *Executor) Issue(ctx context.Context, rq types.ResolvedQuery, page int) uint64 {
	seq := e.seq.Add(1)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.run(ctx, seq, rq, page)
	}()
	return seq
}

// Wait blocks until every issued fetch has completed.
func (e *Executor) Wait() {
	e.wg.Wait()
}

func (e *Executor) run(ctx context.Context, seq uint64, rq types.ResolvedQuery, page int) (Result, bool) {
	fetchesIssued.Inc()
	data, err := e.fetch(ctx, rq, page)
	res := Result{Seq: seq, Page: page, Data: data, Err: err, Query: rq}
	if err != nil {
		fetchErrors.Inc()
		log.Printf("Failed to fetch listings (seq %d): %v", seq, err)
	}

	e.mu.Lock()
	if seq != e.seq.Load() {
		e.mu.Unlock()
		fetchesStale.Inc()
		log.Printf("Dropping stale listings response %d, latest is %d", seq, e.seq.Load())
		return res, false
	}
	if err != nil {
		// the last listings stay on screen, only the error is recorded
		e.current.Seq = seq
		e.current.Err = err
		e.mu.Unlock()
		return res, false
	}
	e.current = res
	listeners := append([]func(Result){}, e.onApply...)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(res)
	}
	return res, true
}
