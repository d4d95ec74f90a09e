package picker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu        sync.Mutex
	resets    int
	appends   [][]Entry
	preloaded map[string][]int
	// onAppend runs before each append is recorded.
	onAppend func(n int)
}

func newRecordingSink() *recordingSink {
	return &recordingSink{preloaded: make(map[string][]int)}
}

func (s *recordingSink) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
	s.appends = nil
	return nil
}

func (s *recordingSink) Preload(family string, weights []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preloaded[family] = weights
}

func (s *recordingSink) Append(ctx context.Context, batch []Entry) error {
	s.mu.Lock()
	n, hook := len(s.appends), s.onAppend
	s.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appends = append(s.appends, append([]Entry(nil), batch...))
	return nil
}

func (s *recordingSink) families() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, b := range s.appends {
		for _, e := range b {
			out = append(out, e.Family)
		}
	}
	return out
}

func makeFonts(n int) []font.Record {
	out := make([]font.Record, n)
	for i := range out {
		out[i] = font.Record{Family: fmt.Sprintf("Family %03d", i), Category: font.SansSerif}
	}
	return out
}

func TestRenderBatches(t *testing.T) {
	sink := newRecordingSink()
	r := NewRenderer()

	res, err := r.Render(context.Background(), sink, makeFonts(230), "")
	require.NoError(t, err)

	assert.Equal(t, Result{Rendered: 230, Batches: 10}, res)
	require.Len(t, sink.appends, 10)
	for i := 0; i < 9; i++ {
		assert.Len(t, sink.appends[i], 25)
	}
	assert.Len(t, sink.appends[9], 5)
	assert.Equal(t, 1, sink.resets)
	assert.Len(t, sink.preloaded, 230)
	assert.Equal(t, []int{400, 700}, sink.preloaded["Family 000"])
}

func TestRenderActiveFirst(t *testing.T) {
	sink := newRecordingSink()
	fonts := makeFonts(40)

	_, err := NewRenderer().Render(context.Background(), sink, fonts, "Family 030")
	require.NoError(t, err)

	got := sink.families()
	require.Len(t, got, 40)
	assert.Equal(t, "Family 030", got[0])
	assert.Equal(t, "Family 000", got[1])
	assert.Equal(t, "Family 029", got[30])
	assert.Equal(t, "Family 031", got[31])
	assert.True(t, sink.appends[0][0].Active)
	assert.False(t, sink.appends[0][1].Active)
}

func TestRenderEmptyList(t *testing.T) {
	sink := newRecordingSink()
	res, err := NewRenderer().Render(context.Background(), sink, nil, "Inter")
	require.NoError(t, err)
	assert.Zero(t, res)
	assert.Equal(t, 1, sink.resets)
	assert.Empty(t, sink.appends)
}

func TestRenderSupersededDoesNotAppend(t *testing.T) {
	r := NewRenderer(WithBatchSize(10), WithYield(5*time.Millisecond))
	sink := newRecordingSink()

	started := make(chan struct{})
	var once sync.Once
	sink.onAppend = func(n int) {
		if n == 0 {
			once.Do(func() { close(started) })
		}
	}

	errc := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), sink, makeFonts(200), "")
		errc <- err
	}()

	<-started
	sink.mu.Lock()
	sink.onAppend = nil
	sink.mu.Unlock()
	newer := []font.Record{{Family: "Inter"}, {Family: "Inter Tight"}}
	res, err := r.Render(context.Background(), sink, newer, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rendered)

	assert.ErrorIs(t, <-errc, ErrSuperseded)
	assert.Equal(t, []string{"Inter", "Inter Tight"}, sink.families(), "no stale rows after the newer reset")
}

func TestRenderContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := newRecordingSink()
	sink.onAppend = func(n int) { cancel() }

	res, err := NewRenderer(WithBatchSize(5)).Render(ctx, sink, makeFonts(20), "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Batches)
}
