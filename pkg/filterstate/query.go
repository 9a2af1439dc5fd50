package filterstate

import (
	"net/url"
	"sync"
)

// Query holds the current query string. Update must apply fn atomically.
type Query interface {
	Values() url.Values
	Update(fn func(q url.Values))
}

type Listener func(q url.Values)

// MemoryQuery is an in-process Query. Every Update notifies the listeners,
// whether or not the values changed.
type MemoryQuery struct {
	mu        sync.Mutex
	values    url.Values
	revision  uint64
	listeners map[int]Listener
	nextId    int
}

func NewMemoryQuery(initial url.Values) *MemoryQuery {
	return &MemoryQuery{
		values:    clone(initial),
		listeners: make(map[int]Listener),
	}
}

// ParseQuery builds a MemoryQuery from a raw query string, ignoring
// malformed pairs.
func ParseQuery(raw string) *MemoryQuery {
	q, _ := url.ParseQuery(raw)
	return NewMemoryQuery(q)
}

func clone(q url.Values) url.Values {
	res := make(url.Values, len(q))
	for k, v := range q {
		res[k] = append([]string(nil), v...)
	}
	return res
}

func (m *MemoryQuery) Values() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.values)
}

func (m *MemoryQuery) Update(fn func(q url.Values)) {
	m.mu.Lock()
	next := clone(m.values)
	fn(next)
	m.values = next
	m.revision++
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(clone(next))
	}
}

// Subscribe registers a listener and returns a function removing it.
func (m *MemoryQuery) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextId
	m.nextId++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *MemoryQuery) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

func (m *MemoryQuery) Encode() string {
	return m.Values().Encode()
}
