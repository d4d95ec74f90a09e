package warm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/pkg/db"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacher struct {
	mu     sync.Mutex
	cached map[string]bool
	calls  map[string]int
	fail   func(family string, weight int, call int) error
}

func newFakeCacher() *fakeCacher {
	return &fakeCacher{cached: map[string]bool{}, calls: map[string]int{}}
}

func fontKey(family string, weight int) string {
	return fmt.Sprintf("%s/%d", family, weight)
}

func (c *fakeCacher) Available(family string, weight int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached[fontKey(family, weight)]
}

func (c *fakeCacher) Cache(_ context.Context, family string, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := fontKey(family, weight)
	c.calls[k]++
	if c.fail != nil {
		if err := c.fail(family, weight, c.calls[k]); err != nil {
			return err
		}
	}
	c.cached[k] = true
	return nil
}

func (c *fakeCacher) callCount(family string, weight int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[fontKey(family, weight)]
}

func testConfig() Config {
	return Config{
		Workers:      1,
		MaxRetries:   2,
		RetryBackoff: 10 * time.Millisecond,
		MaxBackoff:   20 * time.Millisecond,
		IdlePoll:     5 * time.Millisecond,
		MaxIdlePoll:  20 * time.Millisecond,
	}
}

func newTestEngine(t *testing.T, c Cacher) (*Engine, *queue.Queue) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "warm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	q := queue.NewQueue(d.DB, d.SqlConn(), "warm")
	e := NewEngine(q, c, testConfig())
	t.Cleanup(e.Stop)
	return e, q
}

func waitStatus(t *testing.T, q *queue.Queue, id, status string) *queue.WarmJob {
	t.Helper()
	var job *queue.WarmJob
	require.Eventually(t, func() bool {
		j, err := q.Get(context.Background(), id)
		if err != nil {
			return false
		}
		job = j
		return j.Status == status
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestWarmCachesMissingWeights(t *testing.T) {
	c := newFakeCacher()
	c.cached[fontKey("Lato", 400)] = true
	e, q := newTestEngine(t, c)

	id, err := e.Warm(context.Background(), "Lato", []int{400, 700})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job, err := q.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []int{700}, job.Weights, "cached weights are not queued")

	e.Start()
	waitStatus(t, q, id, queue.StatusDone)
	assert.True(t, c.Available("Lato", 700))
	assert.Zero(t, c.callCount("Lato", 400))
}

func TestWarmNothingMissing(t *testing.T) {
	c := newFakeCacher()
	c.cached[fontKey("Lato", 400)] = true
	e, _ := newTestEngine(t, c)

	id, err := e.Warm(context.Background(), "Lato", []int{400})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestWarmRetriesTransientFailure(t *testing.T) {
	c := newFakeCacher()
	c.fail = func(_ string, _ int, call int) error {
		if call == 1 {
			return errors.New("connection reset")
		}
		return nil
	}
	e, q := newTestEngine(t, c)

	id, err := e.Warm(context.Background(), "Inter", []int{400})
	require.NoError(t, err)
	e.Start()

	job := waitStatus(t, q, id, queue.StatusDone)
	assert.Equal(t, 1, job.Attempts)
	assert.Equal(t, 2, c.callCount("Inter", 400))
}

func TestWarmGivesUpAfterMaxRetries(t *testing.T) {
	c := newFakeCacher()
	c.fail = func(string, int, int) error { return errors.New("connection reset") }
	e, q := newTestEngine(t, c)

	id, err := e.Warm(context.Background(), "Inter", []int{400})
	require.NoError(t, err)
	e.Start()

	job := waitStatus(t, q, id, queue.StatusFailed)
	assert.Equal(t, 2, job.Attempts)
	assert.Contains(t, job.Error, "connection reset")
	assert.Equal(t, 2, c.callCount("Inter", 400))
}

func TestWarmPermanentFailureDoesNotRetry(t *testing.T) {
	c := newFakeCacher()
	c.fail = func(string, int, int) error {
		return fmt.Errorf("download: %w", font.ErrFontNotFound)
	}
	e, q := newTestEngine(t, c)

	id, err := e.Warm(context.Background(), "No Such Family", []int{400})
	require.NoError(t, err)
	e.Start()

	job := waitStatus(t, q, id, queue.StatusFailed)
	assert.Equal(t, 1, job.Attempts)
	assert.Equal(t, 1, c.callCount("No Such Family", 400))
}

func TestStartStopIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, newFakeCacher())
	e.Start()
	e.Start()
	e.Stop()
	e.Stop()
}

func TestCalculateBackoff(t *testing.T) {
	e := &Engine{config: Config{RetryBackoff: time.Second, MaxBackoff: 5 * time.Second}}
	assert.Equal(t, time.Second, e.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, e.calculateBackoff(2))
	assert.Equal(t, 4*time.Second, e.calculateBackoff(3))
	assert.Equal(t, 5*time.Second, e.calculateBackoff(4))
}
