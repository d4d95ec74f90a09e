// Package session keeps the customizer state of anonymous visitors.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/export"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/kv"
	"github.com/joeblew999/plat-theme/pkg/picker"
	"github.com/joeblew999/plat-theme/pkg/theme"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ErrInvalidID is returned for ids that are not UUIDs.
var ErrInvalidID = errors.New("invalid session id")

// Warmer downloads the files of a selected family in the background.
type Warmer interface {
	Warm(ctx context.Context, family string, weights []int) (string, error)
}

// Session is one visitor's customizer.
type Session struct {
	ID    string
	Store *kv.SQLStore
	Theme *theme.Theme
	// Links are the stylesheets the visitor's page already carries.
	Links  *font.LinkSet
	Render *picker.Renderer
	Search *picker.Debouncer
}

// ExportInput collects what the exporter needs from the session.
func (s *Session) ExportInput(ctx context.Context, store *images.Store) (export.Input, error) {
	in := export.Input{
		Snapshot: s.Theme.Snapshot(),
		Styles: map[typography.Role][]typography.ElementStyle{
			typography.Heading: s.Theme.Fonts.Styles(typography.Heading),
			typography.Body:    s.Theme.Fonts.Styles(typography.Body),
		},
	}
	if store == nil {
		return in, nil
	}
	imgs, err := store.All(ctx, s.ID)
	if err != nil {
		return export.Input{}, err
	}
	in.Images = imgs
	return in, nil
}

// Options configures a Manager.
type Options struct {
	Expiry    time.Duration
	Debounce  time.Duration
	BatchSize int
	Warmer    Warmer
}

// Manager builds sessions on first use and keeps recent ones in memory.
// State survives eviction because every change is persisted first.
type Manager struct {
	cache    *collection.Cache
	conn     sqlx.SqlConn
	weights  typography.WeightSource
	library  *colors.Library
	elements *typography.Registry
	opts     Options
}

// NewManager creates a session manager.
func NewManager(conn sqlx.SqlConn, weights typography.WeightSource, library *colors.Library,
	elements *typography.Registry, opts Options) (*Manager, error) {
	if opts.Expiry <= 0 {
		opts.Expiry = 24 * time.Hour
	}
	cache, err := collection.NewCache(opts.Expiry, collection.WithName("sessions"))
	if err != nil {
		return nil, err
	}
	return &Manager{
		cache:    cache,
		conn:     conn,
		weights:  weights,
		library:  library,
		elements: elements,
		opts:     opts,
	}, nil
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Get returns the session for id, restoring it from storage when it is not
// in memory.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	v, err := m.cache.Take(id, func() (any, error) {
		return m.build(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Drop evicts a session from memory. Its stored state is kept.
func (m *Manager) Drop(id string) {
	if s, ok := m.cache.Get(id); ok {
		s.(*Session).Search.Stop()
	}
	m.cache.Del(id)
}

func (m *Manager) build(ctx context.Context, id string) (*Session, error) {
	sess := &Session{
		ID:     id,
		Store:  kv.NewSQLStore(m.conn, id),
		Links:  font.NewLinkSet(),
		Search: picker.NewDebouncer(m.opts.Debounce),
	}
	var renderOpts []picker.Option
	if m.opts.BatchSize > 0 {
		renderOpts = append(renderOpts, picker.WithBatchSize(m.opts.BatchSize))
	}
	sess.Render = picker.NewRenderer(renderOpts...)

	fonts := typography.NewState(sess.Store, m.weights, m.elements,
		typography.WithListener(typography.ListenerFunc(func(ctx context.Context, role typography.Role, s typography.Settings) {
			m.fontChanged(ctx, sess, role, s)
		})))
	cs := colors.NewState(sess.Store, m.library, colors.ListenerFunc(func(ctx context.Context, mode colors.Mode, active colors.Scheme) {
		logx.WithContext(ctx).Debugw("Colors changed",
			logx.Field("session", id),
			logx.Field("mode", mode),
			logx.Field("background", active.Background),
			logx.Field("text", active.Text),
		)
	}))
	sess.Theme = theme.New(fonts, cs)

	if err := sess.Theme.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	logx.WithContext(ctx).Infow("Session restored", logx.Field("session", id))
	return sess, nil
}

func (m *Manager) fontChanged(ctx context.Context, sess *Session, role typography.Role, s typography.Settings) {
	if m.opts.Warmer == nil {
		return
	}
	weights := m.weights.Weights(s.Family)
	if len(weights) == 0 {
		weights = []int{s.Weight}
	}
	if _, err := m.opts.Warmer.Warm(ctx, s.Family, weights); err != nil {
		logx.WithContext(ctx).Errorw("Failed to queue font warm-up",
			logx.Field("session", sess.ID),
			logx.Field("role", role),
			logx.Field("family", s.Family),
			logx.Field("error", err.Error()),
		)
	}
}
