// Package ingest implements the download queue and the extraction pipeline
// that turns an external URL into a catalogued song.
package ingest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/notseanray/seanifyv2-backend/model"
)

// Queue is an ordered list of pending download requests. Enqueue and Pop
// are O(1) under a single mutex; entries are processed FIFO.
type Queue struct {
	mu      sync.Mutex
	entries []model.QueueEntry
	wake    chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Enqueue appends a pending download and wakes the worker.
func (q *Queue) Enqueue(url, requestedBy string) {
	q.mu.Lock()
	q.entries = append(q.entries, model.QueueEntry{
		ID:          uuid.New(),
		URL:         url,
		RequestedBy: requestedBy,
	})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest pending entry, if any.
func (q *Queue) Pop() (model.QueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return model.QueueEntry{}, false
	}
	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry, true
}

// Clear discards all pending entries without processing them. Privileged.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.entries = nil
	q.mu.Unlock()
}

// List returns a snapshot of the pending entries, oldest first.
func (q *Queue) List() []model.QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]model.QueueEntry(nil), q.entries...)
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Wake signals when an entry has been enqueued.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}
