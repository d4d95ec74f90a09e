package picker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/joeblew999/plat-theme/pkg/font"
)

// DefaultBatchSize is how many entries one append carries.
const DefaultBatchSize = 25

// ErrSuperseded is the cancellation cause of a render replaced by a newer one.
var ErrSuperseded = errors.New("render superseded")

// Entry is one row of the picker list.
type Entry struct {
	Family   string        `json:"family"`
	Category font.Category `json:"category"`
	Active   bool          `json:"active"`
}

// Sink receives the rendered list. Reset clears it, Preload requests the
// family stylesheet and Append adds rows to the end.
type Sink interface {
	Reset(ctx context.Context) error
	Preload(family string, weights []int)
	Append(ctx context.Context, batch []Entry) error
}

// Result summarizes a finished render.
type Result struct {
	Rendered int `json:"rendered"`
	Batches  int `json:"batches"`
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithYield pauses for d between batches instead of only yielding the processor.
func WithYield(d time.Duration) Option {
	return func(r *Renderer) {
		r.yield = func(ctx context.Context) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return context.Cause(ctx)
			case <-t.C:
				return nil
			}
		}
	}
}

// Renderer emits a font list in batches. One Renderer serves one list: a new
// Render cancels the one in flight.
type Renderer struct {
	batchSize int
	yield     func(ctx context.Context) error

	// emit serializes sink mutations. A render resets the sink and every
	// batch checks its token while holding it.
	emit   sync.Mutex
	cancel context.CancelCauseFunc
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		batchSize: DefaultBatchSize,
		yield: func(ctx context.Context) error {
			runtime.Gosched()
			return context.Cause(ctx)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render clears the sink and emits fonts with the active family first. It
// returns ErrSuperseded when a newer Render took over, and the context cause
// when ctx ends.
func (r *Renderer) Render(ctx context.Context, sink Sink, fonts []font.Record, active string) (Result, error) {
	entries := entriesFor(ReorderActive(fonts, active), active)

	r.emit.Lock()
	if r.cancel != nil {
		r.cancel(ErrSuperseded)
	}
	ctx, cancel := context.WithCancelCause(ctx)
	r.cancel = cancel
	err := sink.Reset(ctx)
	r.emit.Unlock()

	defer cancel(nil)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for start := 0; start < len(entries); start += r.batchSize {
		if start > 0 {
			if err := r.yield(ctx); err != nil {
				return res, err
			}
		}
		end := min(start+r.batchSize, len(entries))
		if err := r.appendBatch(ctx, sink, entries[start:end]); err != nil {
			return res, err
		}
		res.Rendered += end - start
		res.Batches++
	}
	renderBatches.Observe(int64(res.Batches))
	return res, nil
}

func (r *Renderer) appendBatch(ctx context.Context, sink Sink, batch []Entry) error {
	r.emit.Lock()
	defer r.emit.Unlock()

	if ctx.Err() != nil {
		err := context.Cause(ctx)
		if errors.Is(err, ErrSuperseded) {
			staleBatches.Inc()
		}
		return err
	}
	for _, e := range batch {
		sink.Preload(e.Family, font.FallbackWeights)
	}
	return sink.Append(ctx, batch)
}

func entriesFor(fonts []font.Record, active string) []Entry {
	entries := make([]Entry, len(fonts))
	for i, f := range fonts {
		entries[i] = Entry{
			Family:   f.Family,
			Category: f.Category,
			Active:   f.Family == active,
		}
	}
	return entries
}
