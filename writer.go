// writer.go: Single background consumer of the message queue
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package journal

// writer drains the message queue on its own goroutine and drives the
// rotator. It is the only goroutine that ever touches the file handle
// or the directory state, which is why the rotator needs no locking.
//
// The loop alternates between two states: idle (blocked in await) and
// draining (working through a detached batch). A closed queue is
// terminal: the batch returned together with closed=true is the final
// one, so shutdown never drops lines that were enqueued before Close.
type writer struct {
	logger *Logger
	queue  *messageQueue
	rot    *fileRotator
	done   chan struct{}
}

func newWriter(logger *Logger, queue *messageQueue, rot *fileRotator) *writer {
	return &writer{
		logger: logger,
		queue:  queue,
		rot:    rot,
		done:   make(chan struct{}),
	}
}

// start launches the consumer goroutine.
func (w *writer) start() {
	go w.run()
}

func (w *writer) run() {
	defer close(w.done)

	w.rot.open()
	for {
		lines, closed := w.queue.await()
		for _, line := range lines {
			// The rotation check runs per line, not per batch, so one
			// oversized batch rotates correctly mid-batch.
			if w.rot.appendLine(line) {
				w.logger.written.Add(1)
			}
			w.logger.fileSize.Store(w.rot.size)
		}
		if closed {
			w.rot.closeFile()
			return
		}
	}
}
