package server

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/inquiry"
	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/storefront"
	"github.com/matst80/car-finder/pkg/tracking"
	"github.com/matst80/car-finder/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carfinder_http_requests_total",
		Help: "The total number of handled storefront requests",
	}, []string{"route"})
	searches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carfinder_searches_total",
		Help: "The total number of listing searches",
	})
)

// Backend is the listings API as used by the web server.
type Backend interface {
	listings.Fetcher
	storefront.VocabularyFetcher
	FetchListing(ctx context.Context, id int) (*types.Listing, error)
	FetchSimilar(ctx context.Context, id int) ([]types.Listing, error)
	TopMakes(ctx context.Context) ([]types.TopMake, error)
}

type WebServer struct {
	Backend    Backend
	Vocabulary *storefront.VocabularyLoader
	Inquiries  *inquiry.Service
	Tracking   tracking.Tracking
	Cache      *cache.Cache
	PageSize   int
	PageTTL    time.Duration
	TopTTL     time.Duration
}

func NewWebServer(backend Backend, loader *storefront.VocabularyLoader, inquiries *inquiry.Service) *WebServer {
	return &WebServer{
		Backend:    backend,
		Vocabulary: loader,
		Inquiries:  inquiries,
		PageSize:   types.DefaultPageSize,
		PageTTL:    30 * time.Second,
		TopTTL:     5 * time.Minute,
	}
}

func (ws *WebServer) sessionTracker() common.SessionTracker {
	if ws.Tracking == nil {
		return nil
	}
	return ws.Tracking
}

func (ws *WebServer) handle(route string, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error) http.HandlerFunc {
	h := common.JsonHandler(ws.sessionTracker(), fn)
	return func(w http.ResponseWriter, r *http.Request) {
		requests.WithLabelValues(route).Inc()
		h(w, r)
	}
}

// ClientHandler serves the storefront JSON api.
func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("GET /api/search", ws.handle("search", ws.Search))
	srv.HandleFunc("POST /api/search/set", ws.handle("set", ws.SetFilters))
	srv.HandleFunc("POST /api/search/apply", ws.handle("apply", ws.ApplyDraft))
	srv.HandleFunc("POST /api/search/clear", ws.handle("clear", ws.ClearDraft))
	srv.HandleFunc("GET /api/filters", ws.handle("filters", ws.Filters))
	srv.HandleFunc("GET /api/filters/models", ws.handle("models", ws.Models))
	srv.HandleFunc("GET /api/listings/{id}", ws.handle("listing", ws.GetListing))
	srv.HandleFunc("GET /api/listings/{id}/similar", ws.handle("similar", ws.Similar))
	srv.HandleFunc("GET /api/top-makes", ws.handle("top-makes", ws.TopMakes))
	srv.HandleFunc("POST /api/inquiry", ws.handle("inquiry", ws.Inquiry))
	srv.HandleFunc("GET /api/loan", ws.handle("loan", ws.Loan))
	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return srv
}

// DebugHandler serves health, metrics and optionally pprof.
func DebugHandler(profiling bool) *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())
	if profiling {
		srv.HandleFunc("/debug/pprof/", pprof.Index)
		srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
		srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return srv
}
