package queue

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, *db.DB) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return NewQueue(d.DB, d.SqlConn(), "warm"), d
}

func TestEnqueueReceiveDone(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, WarmJob{Family: "Lato", Weights: []int{700, 400, 700}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, []int{400, 700}, job.Weights)
	assert.Equal(t, DefaultMaxAttempts, job.MaxAttempts)

	require.NoError(t, q.Extend(ctx, job, time.Minute))
	require.NoError(t, q.MarkDone(ctx, job))

	empty, err := q.Receive(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)

	stored, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, stored.Status)
	assert.Equal(t, "Lato", stored.Family)
	assert.Equal(t, []int{400, 700}, stored.Weights)
}

func TestEnqueueRequiresFamily(t *testing.T) {
	q, _ := newTestQueue(t)
	_, err := q.Enqueue(context.Background(), WarmJob{})
	assert.Error(t, err)
}

func TestMarkRetryRequeues(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, WarmJob{Family: "Roboto", Weights: []int{400}})
	require.NoError(t, err)

	job, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)

	job.Attempts++
	require.NoError(t, q.MarkRetry(ctx, job, 0, errors.New("timeout")))

	again, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, id, again.ID)
	assert.Equal(t, 1, again.Attempts)
	assert.Equal(t, "timeout", again.Error)

	stored, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusRetry, stored.Status)
	assert.Equal(t, 1, stored.Attempts)

	again.Attempts++
	require.NoError(t, q.MarkFailed(ctx, again, errors.New("gave up")))
	stored, err = q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, stored.Status)
	assert.Equal(t, "gave up", stored.Error)
}

func TestEnqueueOnceDeduplicates(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	first, err := q.EnqueueOnce(ctx, WarmJob{Family: "Lato", Weights: []int{400, 700}})
	require.NoError(t, err)
	second, err := q.EnqueueOnce(ctx, WarmJob{Family: "Lato", Weights: []int{700, 400}})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := q.EnqueueOnce(ctx, WarmJob{Family: "Lato", Weights: []int{300}})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	job, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	require.NoError(t, q.MarkDone(ctx, job))

	// A finished job does not block a new request.
	fresh, err := q.EnqueueOnce(ctx, WarmJob{Family: job.Family, Weights: job.Weights})
	require.NoError(t, err)
	assert.NotEqual(t, job.ID, fresh)
}

func TestListAndStats(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	for _, family := range []string{"Lato", "Inter", "Oswald"} {
		_, err := q.Enqueue(ctx, WarmJob{Family: family, Weights: []int{400}})
		require.NoError(t, err)
	}
	job, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NoError(t, q.MarkDone(ctx, job))

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats[StatusPending])
	assert.Equal(t, 1, stats[StatusDone])

	all, err := q.List(ctx, "all", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	done, err := q.List(ctx, StatusDone, 10)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, job.ID, done[0].ID)
}

func TestGetUnknown(t *testing.T) {
	q, _ := newTestQueue(t)
	_, err := q.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventHistory(t *testing.T) {
	q, d := newTestQueue(t)
	ctx := context.Background()

	events, err := NewEventLog(d.SqlConn())
	require.NoError(t, err)
	q.Events = events

	id, err := q.Enqueue(ctx, WarmJob{Family: "Lato", Weights: []int{700, 400}})
	require.NoError(t, err)
	job, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NoError(t, q.MarkDone(ctx, job))
	events.Flush()

	var history []Event
	require.Eventually(t, func() bool {
		history, err = events.History(ctx, id)
		return err == nil && len(history) == 2
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, EventQueued, history[0].Kind)
	assert.Equal(t, "400,700", history[0].Details)
	assert.Equal(t, EventCached, history[1].Kind)

	none, err := events.History(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
