package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueHandlerBatches(t *testing.T) {
	var mu sync.Mutex
	batches := [][]int{}
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, append([]int(nil), items...))
	}, 2, 10*time.Millisecond)

	q.Add(1, 2, 3)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, [][]int{{1, 2}, {3}}, batches)
	mu.Unlock()
	q.Close()
}

func TestQueueHandlerCloseFlushes(t *testing.T) {
	var got []string
	q := NewQueueHandler(func(items []string) {
		got = append(got, items...)
	}, 10, time.Hour)

	q.Add("a", "b")
	q.Close()
	q.Close()

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 0, q.Len())
}
