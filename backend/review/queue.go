// Package review holds not-yet-published drafts awaiting human
// accept/edit/discard. A queue is private to one admin session and is
// never persisted; discarded entries are gone for good.
package review

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound means no queue entry carries the given id.
	ErrNotFound = errors.New("entry not found in review queue")
	// ErrConfirmationRequired gates publish-all behind an explicit human
	// confirmation.
	ErrConfirmationRequired = errors.New("publish all requires confirmation")
)

// Queue is an in-memory, newest-first list of drafts of one entity kind.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
}

func NewQueue[T any](id func(T) string) *Queue[T] {
	return &Queue[T]{id: id}
}

// EnqueueMany prepends a batch to the front of the queue, preserving the
// batch's internal order. There is no de-duplication: identical
// regenerations produce duplicate entries, each under a fresh synthetic id.
func (q *Queue[T]) EnqueueMany(entities []T) {
	if len(entities) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(append([]T(nil), entities...), q.items...)
}

// Items returns a copy of the queue, newest first.
func (q *Queue[T]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]T(nil), q.items...)
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Take removes the entry and hands it to the caller; backs the edit path
// (the entry is never re-enqueued automatically).
func (q *Queue[T]) Take(id string) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.remove(id)
}

// Update replaces the entry in place, keeping its queue position.
func (q *Queue[T]) Update(id string, entity T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if q.id(item) == id {
			q.items[i] = entity
			return true
		}
	}
	return false
}

// Discard drops the entry permanently.
func (q *Queue[T]) Discard(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.remove(id)
	return ok
}

// Publish removes the entry first and then runs the create call. On
// failure the entry is NOT restored: publishing is at-most-once per entry
// and the caller surfaces the error to the user.
func (q *Queue[T]) Publish(ctx context.Context, id string, create func(context.Context, T) error) error {
	entity, ok := q.Take(id)
	if !ok {
		return ErrNotFound
	}
	return create(ctx, entity)
}

// PublishResult is the outcome of one entry of a publish-all run.
type PublishResult struct {
	ID  string `json:"id"`
	Err error  `json:"-"`
}

// PublishAll publishes every queued entry in order. It requires the caller
// to pass an explicit confirmation and returns one result per entry; a
// failure partway through does not roll back already-published entries.
func (q *Queue[T]) PublishAll(ctx context.Context, confirmed bool, create func(context.Context, T) error) ([]PublishResult, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	q.mu.Lock()
	entries := q.items
	q.items = nil
	q.mu.Unlock()

	results := make([]PublishResult, 0, len(entries))
	for _, entity := range entries {
		results = append(results, PublishResult{
			ID:  q.id(entity),
			Err: create(ctx, entity),
		})
	}
	return results, nil
}

// remove must be called with the lock held.
func (q *Queue[T]) remove(id string) (T, bool) {
	for i, item := range q.items {
		if q.id(item) == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return item, true
		}
	}
	var zero T
	return zero, false
}
