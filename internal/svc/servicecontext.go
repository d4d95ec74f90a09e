// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"fmt"

	"github.com/joeblew999/plat-theme/internal/config"
	"github.com/joeblew999/plat-theme/internal/session"
	"github.com/joeblew999/plat-theme/pkg/colors"
	"github.com/joeblew999/plat-theme/pkg/db"
	"github.com/joeblew999/plat-theme/pkg/export"
	"github.com/joeblew999/plat-theme/pkg/font"
	"github.com/joeblew999/plat-theme/pkg/images"
	"github.com/joeblew999/plat-theme/pkg/queue"
	"github.com/joeblew999/plat-theme/pkg/typography"
	"github.com/joeblew999/plat-theme/pkg/warm"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
)

type ServiceContext struct {
	Config   config.Config
	DB       *db.DB
	Catalog  *font.Loader
	Fonts    *font.Manager
	Elements *typography.Registry
	Presets  *colors.Library
	Images   *images.Store
	Exporter *export.Exporter
	Sessions *session.Manager
	Queue    *queue.Queue
	Warm     *warm.Engine
}

func NewServiceContext(c config.Config) (*ServiceContext, error) {
	var (
		database *db.DB
		presets  *colors.Library
		exporter *export.Exporter
	)

	fonts := font.NewManagerWithDir(c.Fonts.Dir)
	catalog := font.NewLoader(
		font.NewHTTPFetcher(c.Fonts.DirectoryURL, c.Fonts.APIKey, c.Fonts.Timeout),
		font.WithCaps(map[font.Category]int{
			font.SansSerif: c.Fonts.SansSerifCap,
			font.Serif:     c.Fonts.OtherCap,
			font.Display:   c.Fonts.OtherCap,
			font.Monospace: c.Fonts.OtherCap,
		}),
	)

	// Database, presets and component templates are independent.
	err := mr.Finish(
		func() error {
			var e error
			database, e = db.Open(c.Database.Path)
			return e
		},
		func() error {
			var e error
			presets, e = colors.NewLibrary(c.Colors.PresetFile)
			return e
		},
		func() error {
			var e error
			exporter, e = export.New(c.Export.Dir,
				export.NewRenderer(
					export.WithCache(c.Export.Cache),
					export.WithCacheLimit(c.Export.CacheLimit),
					export.WithCacheExpiry(c.Export.CacheExpiry),
				),
				export.WithFontSource(fonts),
				export.WithCategories(func(family string) font.Category {
					if cat, ok := catalog.Loaded(); ok {
						return cat.CategoryOf(family)
					}
					return font.SansSerif
				}),
			)
			return e
		},
	)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	conn := database.SqlConn()
	q := queue.NewQueue(database.DB, conn, c.Warm.Queue)
	if events, err := queue.NewEventLog(conn); err != nil {
		logx.Errorf("Warm events disabled: %v", err)
	} else {
		q.Events = events
	}

	engine := warm.NewEngine(q, fonts, warm.Config{
		Workers:      c.Warm.Workers,
		MaxRetries:   c.Warm.MaxRetries,
		RetryBackoff: c.Warm.RetryBackoff,
		MaxBackoff:   c.Warm.MaxBackoff,
		RateLimit:    c.Warm.RateLimit,
	})

	var warmer session.Warmer
	if c.Warm.Enabled {
		warmer = engine
	}

	elements := typography.MustNewRegistry(typography.DefaultElements()...)
	sessions, err := session.NewManager(conn, typography.WeightsFunc(catalog.Weights), presets, elements, session.Options{
		Expiry:    c.Sessions.Expiry,
		Debounce:  c.Picker.Debounce,
		BatchSize: c.Picker.BatchSize,
		Warmer:    warmer,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	slots := c.Images.Slots
	if len(slots) == 0 {
		slots = images.DefaultSlots
	}

	return &ServiceContext{
		Config:   c,
		DB:       database,
		Catalog:  catalog,
		Fonts:    fonts,
		Elements: elements,
		Presets:  presets,
		Images:   images.NewStore(conn, slots, c.Images.MaxBytes),
		Exporter: exporter,
		Sessions: sessions,
		Queue:    q,
		Warm:     engine,
	}, nil
}

// Close releases the database and flushes pending warm events.
func (s *ServiceContext) Close() {
	if s.Queue.Events != nil {
		s.Queue.Events.Flush()
	}
	s.DB.Close()
}
