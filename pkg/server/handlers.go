package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/common/jsoncompat"
	"github.com/matst80/car-finder/pkg/draft"
	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/storefront"
	"github.com/matst80/car-finder/pkg/tracking"
	"github.com/matst80/car-finder/pkg/types"
)

func (ws *WebServer) executor() *listings.Executor {
	e := listings.NewExecutor(ws.Backend)
	if ws.Cache != nil {
		e.WithCache(ws.Cache, ws.PageTTL)
	}
	return e
}

func (ws *WebServer) session(r *http.Request) *storefront.Session {
	return storefront.NewSessionWithExecutor(r.Context(), r.URL.RawQuery, ws.Vocabulary, ws.executor(), ws.PageSize)
}

// Search resolves the query string and returns the page view snapshot.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	s := ws.session(r)
	s.Sync(r.Context())
	snap := s.Snapshot()
	if snap.Error != "" {
		return common.NewHttpError(http.StatusBadGateway, errors.New(snap.Error))
	}
	searches.Inc()
	if ws.Tracking != nil {
		ws.Tracking.TrackSearch(sessionId, tracking.SearchEvent{
			Criteria:        snap.Criteria,
			Query:           snap.Query,
			NumberOfResults: snap.Count,
			Page:            snap.Criteria.Page,
		}, r)
	}
	defaultHeaders(w, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(snap)
}

// SetFilters applies a form encoded change to the query string. With
// op=toggle the field is a multi value category and value, or id, is
// toggled. Otherwise the form is a patch where present keys are set.
func (ws *WebServer) SetFilters(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	if err := r.ParseForm(); err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	s := ws.session(r)
	s.LoadVocabulary(r.Context())
	form := r.PostForm
	switch form.Get("op") {
	case "toggle":
		cat := types.Category(form.Get("field"))
		if !cat.Multi() {
			return common.NewHttpError(http.StatusBadRequest, errors.New("toggle needs features or safety_features"))
		}
		s.Store().ToggleMulti(cat, formValue(form.Get("value"), form.Get("id")))
	case "tab":
		s.SetTab(storefront.Tab(form.Get("value")))
	case "clear_all":
		s.Store().ClearAll()
	default:
		s.Store().SetMany(filterstate.PatchFromForm(form))
	}
	noCache(w)
	w.WriteHeader(http.StatusOK)
	return enc.Encode(queryResponse{Query: s.Store().Encode()})
}

func formValue(label, id string) filterstate.Value {
	if n, err := strconv.Atoi(id); err == nil {
		return filterstate.Id(n)
	}
	return filterstate.Label(label)
}

// ApplyDraft opens the filter modal on the current query, replays the posted
// draft through the editor and commits it.
func (ws *WebServer) ApplyDraft(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	var d draft.Draft
	if err := jsoncompat.NewDecoder(r.Body).Decode(&d); err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	s := ws.session(r)
	s.LoadVocabulary(r.Context())
	editor := s.Editor()
	editor.Open()
	editor.Fill(d)
	editor.Apply()
	noCache(w)
	w.WriteHeader(http.StatusOK)
	return enc.Encode(queryResponse{Query: s.Store().Encode()})
}

// ClearDraft clears every modal filter of the query. Search, condition and
// ordering are kept.
func (ws *WebServer) ClearDraft(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	s := ws.session(r)
	editor := s.Editor()
	editor.Open()
	editor.ClearLocal()
	noCache(w)
	w.WriteHeader(http.StatusOK)
	return enc.Encode(queryResponse{Query: s.Store().Encode()})
}
