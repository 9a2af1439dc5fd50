package server

import (
	"context"
	"net/http"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/lookup"
	"github.com/matst80/car-finder/pkg/types"
)

func (ws *WebServer) Filters(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	v, err := ws.Vocabulary.Load(r.Context())
	if err != nil {
		return backendError(err)
	}
	publicHeaders(w, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(v)
}

// Models lists the models owned by the make slug in the query, or every
// model without one.
func (ws *WebServer) Models(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	v, err := ws.Vocabulary.Load(r.Context())
	if err != nil {
		return backendError(err)
	}
	models := lookup.ModelsOf(v, r.URL.Query().Get("make"))
	if models == nil {
		models = []types.Option{}
	}
	publicHeaders(w, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(models)
}

func (ws *WebServer) GetListing(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	id, err := pathId(r)
	if err != nil {
		return err
	}
	listing, err := ws.Backend.FetchListing(r.Context(), id)
	if err != nil {
		return backendError(err)
	}
	if ws.Tracking != nil {
		ws.Tracking.TrackListingView(sessionId, id)
	}
	publicHeaders(w, "120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(listing)
}

func (ws *WebServer) Similar(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	id, err := pathId(r)
	if err != nil {
		return err
	}
	similar, err := ws.Backend.FetchSimilar(r.Context(), id)
	if err != nil {
		return backendError(err)
	}
	defaultHeaders(w, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(similar)
}

func (ws *WebServer) TopMakes(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	var helper *cache.Helper[[]types.TopMake]
	if ws.Cache != nil {
		helper = cache.NewHelper[[]types.TopMake](ws.Cache)
	}
	top, err := helper.Handle(r.Context(), "top-makes", ws.TopTTL, func(ctx context.Context) ([]types.TopMake, error) {
		return ws.Backend.TopMakes(ctx)
	})
	if err != nil {
		return backendError(err)
	}
	publicHeaders(w, "300")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(top)
}
