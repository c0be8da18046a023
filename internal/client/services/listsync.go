package services

import (
	"sync"
	"sync/atomic"
)

// syncedList is the shared mechanics of every polled list on the client:
// full-replace snapshots guarded by a monotonic fetch sequence, plus local
// mutations applied after server acknowledgement.
//
// The sequence guard closes a polling hazard: two fetches can complete out of
// issue order, and without the guard a slow stale response would overwrite a
// newer snapshot. A fetch takes its number from begin() before issuing the
// request; apply() rejects any snapshot whose number is not above the last
// applied one.
type syncedList[T any] struct {
	mu      sync.Mutex
	items   []T
	applied uint64
	nextSeq atomic.Uint64
}

// begin reserves a sequence number for a fetch about to be issued.
func (l *syncedList[T]) begin() uint64 {
	return l.nextSeq.Add(1)
}

// apply installs a fetched snapshot. It reports false when a later fetch
// already completed, in which case the snapshot is discarded.
func (l *syncedList[T]) apply(seq uint64, items []T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.applied {
		return false
	}
	l.applied = seq
	l.items = items
	return true
}

// mutate applies a local edit (removal, append) to the current items.
func (l *syncedList[T]) mutate(fn func(items []T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = fn(l.items)
}

// snapshot returns a copy of the current items.
func (l *syncedList[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// reset drops the items and invalidates every fetch already in flight, so a
// late response cannot resurrect the old list.
func (l *syncedList[T]) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.applied = l.nextSeq.Load()
}

// removeWhere drops every item matching pred.
func removeWhere[T any](items []T, pred func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if !pred(it) {
			out = append(out, it)
		}
	}
	return out
}
