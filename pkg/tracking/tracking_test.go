package tracking

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/car-finder/pkg/types"
)

func TestEventTrackerPublishesOnClose(t *testing.T) {
	var sent []any
	trk := NewEventTracker("se", func(e any) error {
		sent = append(sent, e)
		return nil
	}, 10, time.Hour)
	trk.now = func() time.Time { return time.Unix(1700000000, 0) }

	r := httptest.NewRequest("GET", "/api/search", nil)
	r.Header.Set("X-Real-Ip", "10.0.0.1")
	r.Header.Set("Referer", "https://cars.example/search")

	trk.TrackSession("s1", r)
	trk.TrackSearch("s1", SearchEvent{Query: "make=ford", NumberOfResults: 3, Page: 1, Criteria: types.FilterCriteria{Make: "ford"}}, r)
	listing := 7
	trk.TrackListingView("s1", 7)
	trk.TrackInquiry("s1", &listing)
	require.NoError(t, trk.Close())

	require.Len(t, sent, 4)

	session := sent[0].(Session)
	assert.Equal(t, "10.0.0.1", session.Ip)
	assert.Equal(t, EventSession, session.Event)
	assert.NotEmpty(t, session.Id)

	search := sent[1].(SearchEvent)
	assert.Equal(t, EventSearch, search.Event)
	assert.Equal(t, "https://cars.example/search", search.Referer)
	assert.Equal(t, "ford", search.Criteria.Make)
	assert.Equal(t, int64(1700000000), search.Timestamp)
	assert.Equal(t, "se", search.Country)

	view := sent[2].(ListingEvent)
	assert.Equal(t, 7, view.Listing)

	inquiry := sent[3].(InquiryEvent)
	assert.Equal(t, EventInquiry, inquiry.Event)
	assert.Equal(t, 7, *inquiry.Listing)
}

func TestClientIpFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "1.2.3.4:5"
	assert.Equal(t, "1.2.3.4:5", clientIp(r))
	r.Header.Set("X-Forwarded-For", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", clientIp(r))
}
