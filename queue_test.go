// queue_test.go: Message queue synchronization tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := newMessageQueue()
	for i := 0; i < 100; i++ {
		assert.True(t, q.enqueue(fmt.Sprintf("line %d", i)))
	}

	lines := q.drainAll()
	require.Len(t, lines, 100)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("line %d", i), line)
	}

	// The drain detached everything; a second one finds nothing.
	assert.Empty(t, q.drainAll())
}

func TestQueueCloseRejectsEnqueue(t *testing.T) {
	q := newMessageQueue()
	assert.True(t, q.enqueue("before"))
	q.close()
	assert.False(t, q.enqueue("after"))

	lines, closed := q.await()
	assert.True(t, closed)
	assert.Equal(t, []string{"before"}, lines)
}

func TestQueueAwaitReturnsFinalBatch(t *testing.T) {
	q := newMessageQueue()
	q.enqueue("a")
	q.enqueue("b")
	q.close()

	lines, closed := q.await()
	assert.True(t, closed)
	assert.Equal(t, []string{"a", "b"}, lines)

	// After the final batch the queue stays empty and terminal.
	lines, closed = q.await()
	assert.True(t, closed)
	assert.Empty(t, lines)
}

func TestQueueAwaitWakesOnEnqueue(t *testing.T) {
	q := newMessageQueue()
	got := make(chan []string, 1)
	go func() {
		lines, _ := q.await()
		got <- lines
	}()

	q.enqueue("wake")
	assert.Equal(t, []string{"wake"}, <-got)
}

func TestQueueConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 250

	q := newMessageQueue()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.enqueue(fmt.Sprintf("p%d-%d", p, i))
			}
		}(p)
	}
	wg.Wait()

	lines := q.drainAll()
	require.Len(t, lines, producers*perProducer)

	// No cross-producer ordering is promised, but each producer's own
	// lines must appear in emit order.
	next := make(map[string]int, producers)
	for _, line := range lines {
		var p, i int
		_, err := fmt.Sscanf(line, "p%d-%d", &p, &i)
		require.NoError(t, err)
		key := fmt.Sprintf("p%d", p)
		assert.Equal(t, next[key], i, "producer %d out of order", p)
		next[key]++
	}
}
