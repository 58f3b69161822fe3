package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type draft struct {
	ID   string
	Name string
}

func newDraftQueue() *Queue[draft] {
	return NewQueue(func(d draft) string { return d.ID })
}

func ids(drafts []draft) []string {
	out := make([]string, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d.ID)
	}
	return out
}

func TestEnqueueManyPrependsBatch(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}, {ID: "b"}})
	q.EnqueueMany([]draft{{ID: "c"}, {ID: "d"}})

	// Newest batch first, batch internal order preserved
	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(q.Items()))
}

func TestEnqueueManyAllowsDuplicates(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a", Name: "first"}})
	q.EnqueueMany([]draft{{ID: "a", Name: "second"}})

	assert.Equal(t, 2, q.Len())
}

func TestPublishRemovesEntryBeforeCreate(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}, {ID: "b"}})

	seen := 0
	err := q.Publish(context.Background(), "a", func(_ context.Context, d draft) error {
		seen++
		// The entry is already out of the queue while create runs
		assert.Equal(t, 1, q.Len())
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, seen)
	assert.Equal(t, []string{"b"}, ids(q.Items()))
}

func TestPublishFailureDoesNotRestore(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}})

	boom := errors.New("gateway down")
	err := q.Publish(context.Background(), "a", func(context.Context, draft) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	// At-most-once: the draft is gone even though the create failed
	assert.Equal(t, 0, q.Len())
}

func TestPublishUnknownID(t *testing.T) {
	q := newDraftQueue()
	err := q.Publish(context.Background(), "missing", func(context.Context, draft) error {
		t.Fatal("create must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishAllRequiresConfirmation(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}})

	_, err := q.PublishAll(context.Background(), false, func(context.Context, draft) error {
		t.Fatal("create must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 1, q.Len())
}

func TestPublishAllReportsPerEntry(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "b"}})
	q.EnqueueMany([]draft{{ID: "a"}})

	boom := errors.New("no space")
	results, err := q.PublishAll(context.Background(), true, func(_ context.Context, d draft) error {
		if d.ID == "b" {
			return boom
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, q.Len())

	assert.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "b", results[1].ID)
	assert.ErrorIs(t, results[1].Err, boom)
}

func TestUpdateKeepsPosition(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	assert.True(t, q.Update("b", draft{ID: "b", Name: "edited"}))
	assert.Equal(t, []string{"a", "b", "c"}, ids(q.Items()))
	assert.Equal(t, "edited", q.Items()[1].Name)

	assert.False(t, q.Update("missing", draft{ID: "missing"}))
}

func TestTakeAndDiscard(t *testing.T) {
	q := newDraftQueue()
	q.EnqueueMany([]draft{{ID: "a"}, {ID: "b"}})

	d, ok := q.Take("a")
	assert.True(t, ok)
	assert.Equal(t, "a", d.ID)
	assert.Equal(t, 1, q.Len())

	assert.True(t, q.Discard("b"))
	assert.False(t, q.Discard("b"))
	assert.Equal(t, 0, q.Len())
}
