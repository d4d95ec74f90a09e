// Package warm downloads selected font families into the local cache in the
// background, with retries.
package warm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/queue"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/rescue"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
	"golang.org/x/time/rate"
)

// Cacher stores font files locally. *font.Manager implements it.
type Cacher interface {
	Available(family string, weight int) bool
	Cache(ctx context.Context, family string, weight int) error
}

// Config holds warm engine configuration.
type Config struct {
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
	RateLimit    int // downloads per minute, 0 for unlimited
	IdlePoll     time.Duration
	MaxIdlePoll  time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:      2,
		MaxRetries:   3,
		RetryBackoff: 30 * time.Second,
		MaxBackoff:   30 * time.Minute,
		RateLimit:    120,
		IdlePoll:     100 * time.Millisecond,
		MaxIdlePoll:  5 * time.Second,
	}
}

// Engine drains the warm queue.
type Engine struct {
	config      Config
	queue       *queue.Queue
	cacher      Cacher
	rateLimiter *rate.Limiter
	running     *syncx.AtomicBool

	ctx    context.Context
	cancel context.CancelFunc
	group  *threading.RoutineGroup
}

// NewEngine creates an engine. Zero config fields take their defaults.
func NewEngine(q *queue.Queue, c Cacher, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = def.RetryBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.IdlePoll <= 0 {
		cfg.IdlePoll = def.IdlePoll
	}
	if cfg.MaxIdlePoll < cfg.IdlePoll {
		cfg.MaxIdlePoll = max(def.MaxIdlePoll, cfg.IdlePoll)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RateLimit))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		config:      cfg,
		queue:       q,
		cacher:      c,
		rateLimiter: rate.NewLimiter(limit, 1),
		running:     syncx.NewAtomicBool(),
		ctx:         ctx,
		cancel:      cancel,
		group:       threading.NewRoutineGroup(),
	}
}

// Warm queues the weights of family that are not cached yet. It returns the
// job id, or "" when nothing needs downloading.
func (e *Engine) Warm(ctx context.Context, family string, weights []int) (string, error) {
	var missing []int
	for _, w := range weights {
		if !e.cacher.Available(family, w) {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return "", nil
	}
	return e.queue.EnqueueOnce(ctx, queue.WarmJob{
		Family:      family,
		Weights:     missing,
		MaxAttempts: e.config.MaxRetries,
	})
}

// Start launches the workers. It is a no-op when already running.
func (e *Engine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}

	logx.Infow("Warm engine started", logx.Field("workers", e.config.Workers))
	for i := 0; i < e.config.Workers; i++ {
		e.group.RunSafe(e.worker)
	}
}

// Stop cancels the workers and waits for them.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}

	logx.Info("Warm engine stopping, waiting for workers")
	e.cancel()
	e.group.Wait()
	logx.Info("Warm engine stopped")
}

func (e *Engine) worker() {
	backoff := e.config.IdlePoll

	for {
		if e.ctx.Err() != nil {
			return
		}

		job, err := e.queue.Receive(e.ctx)
		if err != nil || job == nil {
			if err != nil && e.ctx.Err() == nil {
				logx.Errorf("Warm queue receive failed: %v", err)
			}
			if job == nil && err == nil {
				e.updateQueueDepth()
			}
			if !e.sleep(backoff) {
				return
			}
			backoff = min(backoff*2, e.config.MaxIdlePoll)
			continue
		}

		backoff = e.config.IdlePoll
		e.processJob(job)
	}
}

func (e *Engine) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-e.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (e *Engine) processJob(job *queue.WarmJob) {
	ctx := logx.ContextWithFields(e.ctx,
		logx.Field("job_id", job.ID),
		logx.Field("family", job.Family),
		logx.Field("weights", job.Weights),
	)

	defer rescue.RecoverCtx(ctx, func() {
		jobsFailed.Inc("panic")
		job.Attempts++
		_ = e.queue.MarkFailed(ctx, job, errors.New("panic during warm-up"))
	})

	logx.WithContext(ctx).Info("Warming font")
	start := time.Now()

	var failures []string
	var permanent bool
	for _, w := range job.Weights {
		if e.cacher.Available(job.Family, w) {
			continue
		}
		if err := e.rateLimiter.Wait(ctx); err != nil {
			e.handleError(ctx, job, err)
			return
		}
		_ = e.queue.Extend(ctx, job, time.Minute)

		if err := e.cacher.Cache(ctx, job.Family, w); err != nil {
			failures = append(failures, fmt.Sprintf("weight %d: %v", w, err))
			permanent = permanent || isPermanentFailure(err)
			continue
		}
		filesCached.Inc()
	}

	if len(failures) > 0 {
		err := errors.New(strings.Join(failures, "; "))
		if permanent {
			err = fmt.Errorf("%w: %s", font.ErrFontNotFound, err)
		}
		e.handleError(ctx, job, err)
		return
	}

	if err := e.queue.MarkDone(ctx, job); err != nil {
		logx.WithContext(ctx).Errorf("Failed to mark warm job done: %v", err)
	}
	jobsDone.Inc()
	warmDuration.ObserveFloat(time.Since(start).Seconds())
	logx.WithContext(ctx).Info("Font warmed")
}

func (e *Engine) handleError(ctx context.Context, job *queue.WarmJob, err error) {
	if e.ctx.Err() != nil {
		// Shutting down; goqite hands the message out again after its timeout.
		return
	}

	job.Attempts++
	job.Error = err.Error()

	reason := "transient"
	if isPermanentFailure(err) {
		reason = "permanent"
	}

	if reason == "permanent" || job.Attempts >= job.MaxAttempts {
		if mErr := e.queue.MarkFailed(ctx, job, err); mErr != nil {
			logx.WithContext(ctx).Errorf("Failed to mark warm job failed: %v", mErr)
		}
		jobsFailed.Inc(reason)
		logx.WithContext(ctx).Errorf("Font warm-up failed permanently: %v", err)
		return
	}

	backoff := e.calculateBackoff(job.Attempts)
	if mErr := e.queue.MarkRetry(ctx, job, backoff, err); mErr != nil {
		logx.WithContext(ctx).Errorf("Failed to requeue warm job: %v", mErr)
	}
	jobsRetried.Inc()
	logx.WithContext(ctx).Infof("Font warm-up retrying in %s: %v", backoff, err)
}

func (e *Engine) calculateBackoff(attempts int) time.Duration {
	backoff := e.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempts-1)))
	if backoff > e.config.MaxBackoff {
		return e.config.MaxBackoff
	}
	return backoff
}

// isPermanentFailure reports errors that retrying cannot fix.
func isPermanentFailure(err error) bool {
	return errors.Is(err, font.ErrFontNotFound)
}

func (e *Engine) updateQueueDepth() {
	stats, err := e.queue.Stats(e.ctx)
	if err != nil {
		return
	}
	for status, count := range stats {
		queueDepth.Set(float64(count), status)
	}
}
