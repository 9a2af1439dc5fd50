package listings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/car-finder/pkg/common/jsoncompat"
	"github.com/matst80/car-finder/pkg/types"
)

func TestFetchListingsEncodesQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"id":5,"title":"Mustang GT","make":{"id":1,"name":"Ford"},"price":30000,"listing_images":[]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", nil)
	rq := types.ResolvedQuery{
		Params:           map[string]string{"make": "1", "price_max": "40000", "ordering": "-price"},
		FeatureIds:       []int{2, 3},
		SafetyFeatureIds: []int{1},
	}
	page, err := c.FetchListings(context.Background(), rq, 2)
	require.NoError(t, err)

	assert.Equal(t, "/api/car-listings/", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "1", q.Get("make"))
	assert.Equal(t, "40000", q.Get("price_max"))
	assert.Equal(t, "-price", q.Get("ordering"))
	assert.Equal(t, []string{"2", "3"}, q["features"])
	assert.Equal(t, []string{"1"}, q["safety_features"])
	assert.Equal(t, "2", q.Get("page"))

	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Ford", page.Results[0].Make.Name)
}

func TestFetchVocabulary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filters/", r.URL.Path)
		w.Write([]byte(`{"makes":[{"id":1,"name":"Ford"}],"models":[{"id":10,"name":"Mustang","make":{"id":1,"name":"Ford"}}],"transmissions":[{"id":1,"type":"Manual"}],"fuel_types":[]}`))
	}))
	defer srv.Close()

	v, err := NewClient(srv.URL, nil).FetchVocabulary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ford", v.Makes[0].Label())
	assert.Equal(t, 1, v.Models[0].MakeId())
	assert.Equal(t, "Manual", v.Transmissions[0].Label())
}

func TestStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/car-listings/9/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil)

	_, err := c.FetchListing(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrStatus)

	_, err = c.FetchSimilar(context.Background(), 3)
	assert.ErrorIs(t, err, ErrStatus)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSimilarAndTopMakes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/car-listings/3/other/":
			w.Write([]byte(`[{"id":4},{"id":5}]`))
		case "/top-makes/":
			w.Write([]byte(`[{"id":1,"name":"Ford","count":12,"limited_listings":[{"id":4}]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil)

	similar, err := c.FetchSimilar(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, similar, 2)

	top, err := c.TopMakes(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 12, top[0].Count)
	assert.Equal(t, 4, top[0].Listings[0].Id)
}

func TestSubmitInquiry(t *testing.T) {
	var received types.Inquiry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inquiry/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, jsoncompat.Unmarshal(body, &received))
		if received.Email == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"email":["Enter a valid email address."]}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil)

	listing := 4
	err := c.SubmitInquiry(context.Background(), types.Inquiry{Listing: &listing, Name: "Ann", Email: "ann@example.com", Phone: "123", Message: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, 4, *received.Listing)

	err = c.SubmitInquiry(context.Background(), types.Inquiry{Email: "taken@example.com"})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"Enter a valid email address."}, fields["email"])
}
