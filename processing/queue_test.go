package processing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()

	_, ok := q.Peek()
	assert.False(t, ok)
	_, ok = q.Pop()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	require.Equal(t, 5, q.Len())

	v, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	for i := 0; i < 5; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_WalkSkipsAndStops(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	q.Pop()
	q.Pop()

	var seen []int
	q.Walk(3, func(v int) bool {
		if v >= 8 {
			return false
		}
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []int{5, 6, 7}, seen)
	assert.Equal(t, 8, q.Len(), "walk must not remove elements")

	seen = nil
	q.Walk(100, func(v int) bool {
		seen = append(seen, v)
		return true
	})
	assert.Empty(t, seen)
}

func TestQueue_CompactionKeepsOrder(t *testing.T) {
	q := NewQueue[int]()
	next := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 1000; i++ {
			q.Push(round*1000 + i)
		}
		for i := 0; i < 700; i++ {
			v, ok := q.Pop()
			require.True(t, ok)
			require.Equal(t, next, v)
			next++
		}
	}
	assert.Equal(t, 3000, q.Len())
}

func TestQueue_ConcurrentPushAndDrain(t *testing.T) {
	q := NewQueue[int]()
	const total = 20000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.Push(i)
		}
	}()

	next := 0
	for next < total {
		if v, ok := q.Pop(); ok {
			require.Equal(t, next, v)
			next++
		}
	}
	wg.Wait()
	assert.Equal(t, 0, q.Len())
}
