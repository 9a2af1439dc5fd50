package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Count int      `json:"count"`
	Ids   []string `json:"ids"`
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(v))

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = s.Get(ctx, "b")
	assert.NoError(t, err)
}

func TestCacheFillsLocalFromRemote(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryStore()
	require.NoError(t, remote.Set(ctx, "k", []byte(`{"count":2,"ids":["x","y"]}`), time.Hour))

	c := NewCache(remote, time.Minute)
	var p page
	require.NoError(t, c.Get(ctx, "k", &p))
	assert.Equal(t, page{Count: 2, Ids: []string{"x", "y"}}, p)

	require.NoError(t, remote.Del(ctx, "k"))
	var again page
	require.NoError(t, c.Get(ctx, "k", &again))
	assert.Equal(t, p, again)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &again), ErrMiss)
}

func TestLocalOnlyCache(t *testing.T) {
	ctx := context.Background()
	c := NewCache(nil, 0)
	var p page
	assert.ErrorIs(t, c.Get(ctx, "missing", &p), ErrMiss)
	require.NoError(t, c.Set(ctx, "k", page{Count: 1}, time.Minute))
	require.NoError(t, c.Get(ctx, "k", &p))
	assert.Equal(t, 1, p.Count)
}

func TestHelperLoadsOnce(t *testing.T) {
	ctx := context.Background()
	h := NewHelper[page](NewCache(NewMemoryStore(), time.Minute))
	calls := 0
	load := func(context.Context) (page, error) {
		calls++
		return page{Count: 5}, nil
	}

	p, err := h.Handle(ctx, "p", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Count)
	p, err = h.Handle(ctx, "p", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Count)
	assert.Equal(t, 1, calls)
}

func TestHelperDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHelper[page](NewCache(nil, time.Minute))
	failed := errors.New("backend down")
	_, err := h.Handle(ctx, "p", time.Minute, func(context.Context) (page, error) {
		return page{}, failed
	})
	assert.ErrorIs(t, err, failed)

	var p page
	assert.ErrorIs(t, h.Cache.Get(ctx, "p", &p), ErrMiss)
}

func TestNilHelperCallsThrough(t *testing.T) {
	var h *Helper[int]
	v, err := h.Handle(context.Background(), "k", time.Minute, func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}
