// queue.go: Producer/consumer handoff between emit calls and the writer
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

import "sync"

// messageQueue is the FIFO of rendered log lines shared by all producer
// goroutines and the single writer. One mutex guards both the storage
// and the wake condition: push and drain never touch the slice
// unsynchronized, and a signal can never race past a sleeping writer.
//
// Growth is unbounded. There is no backpressure; producers that flood
// the queue faster than the disk drains it will exhaust memory.
type messageQueue struct {
	mu     sync.Mutex
	wake   *sync.Cond
	lines  []string
	closed bool
}

func newMessageQueue() *messageQueue {
	q := &messageQueue{}
	q.wake = sync.NewCond(&q.mu)
	return q
}

// enqueue appends line and signals the writer exactly once. It reports
// false when the queue has been closed and the line was not accepted.
func (q *messageQueue) enqueue(line string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.lines = append(q.lines, line)
	q.wake.Signal()
	return true
}

// drainAll detaches and returns every queued line, leaving the queue
// empty. The detach is atomic: a batch is never split.
func (q *messageQueue) drainAll() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	lines := q.lines
	q.lines = nil
	return lines
}

// await blocks until at least one line is queued or the queue has been
// closed, then detaches and returns the pending batch. closed reports
// the terminal state: once true, no producer can enqueue again, so the
// returned batch is guaranteed to be the final one.
func (q *messageQueue) await() (lines []string, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.lines) == 0 && !q.closed {
		q.wake.Wait()
	}
	lines = q.lines
	q.lines = nil
	return lines, q.closed
}

// close marks the queue terminal and wakes the writer so it can run its
// final drain. Closing an already-closed queue is harmless.
func (q *messageQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.wake.Signal()
}
