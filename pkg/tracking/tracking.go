package tracking

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSearch(sessionId string, search SearchEvent, r *http.Request)
	TrackListingView(sessionId string, listingId int)
	TrackInquiry(sessionId string, listingId *int)
}

const (
	EventSession uint16 = iota
	EventSearch
	EventListingView
	EventInquiry
)

type BaseEvent struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SearchEvent struct {
	*BaseEvent
	Criteria        types.FilterCriteria `json:"criteria"`
	Query           string               `json:"query"`
	NumberOfResults int                  `json:"noi"`
	Page            int                  `json:"page"`
	Referer         string               `json:"referer,omitempty"`
}

type ListingEvent struct {
	*BaseEvent
	Listing int `json:"listing"`
}

type InquiryEvent struct {
	*BaseEvent
	Listing *int `json:"listing,omitempty"`
}

// Sender publishes a single event.
type Sender func(event any) error

// EventTracker queues events and publishes them in batches from the
// background.
type EventTracker struct {
	country string
	queue   *common.QueueHandler[any]
	now     func() time.Time
}

func NewEventTracker(country string, send Sender, batchSize int, interval time.Duration) *EventTracker {
	return &EventTracker{
		country: country,
		now:     time.Now,
		queue: common.NewQueueHandler(func(events []any) {
			for _, e := range events {
				if err := send(e); err != nil {
					log.Printf("Error sending tracking event: %v", err)
				}
			}
		}, batchSize, interval),
	}
}

func (t *EventTracker) base(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{
		Id:        uuid.NewString(),
		SessionId: sessionId,
		Country:   t.country,
		Context:   "storefront",
		Event:     event,
		Timestamp: t.now().Unix(),
	}
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (t *EventTracker) TrackSession(sessionId string, r *http.Request) {
	t.queue.Add(Session{
		BaseEvent:    t.base(sessionId, EventSession),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

func (t *EventTracker) TrackSearch(sessionId string, search SearchEvent, r *http.Request) {
	search.BaseEvent = t.base(sessionId, EventSearch)
	if r != nil {
		search.Referer = r.Header.Get("Referer")
	}
	t.queue.Add(search)
}

func (t *EventTracker) TrackListingView(sessionId string, listingId int) {
	t.queue.Add(ListingEvent{
		BaseEvent: t.base(sessionId, EventListingView),
		Listing:   listingId,
	})
}

func (t *EventTracker) TrackInquiry(sessionId string, listingId *int) {
	t.queue.Add(InquiryEvent{
		BaseEvent: t.base(sessionId, EventInquiry),
		Listing:   listingId,
	})
}

// Close publishes the queued events and stops the background worker.
func (t *EventTracker) Close() error {
	t.queue.Close()
	return nil
}
