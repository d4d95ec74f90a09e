package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joeblew999/plat-theme/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQL(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestStores(t *testing.T) {
	d := openSQL(t)
	stores := map[string]Store{
		"memory": NewMemory(),
		"sql":    NewSQLStore(d.SqlConn(), "session-a"),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "selectedHeadingFont")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "selectedHeadingFont", "Lora"))
			require.NoError(t, s.Set(ctx, "selectedHeadingFont", "Inter"))
			v, err := s.Get(ctx, "selectedHeadingFont")
			require.NoError(t, err)
			assert.Equal(t, "Inter", v)

			require.NoError(t, s.Delete(ctx, "selectedHeadingFont"))
			require.NoError(t, s.Delete(ctx, "selectedHeadingFont"))
			_, ok, err := Lookup(ctx, s, "selectedHeadingFont")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLStoreScopes(t *testing.T) {
	ctx := context.Background()
	conn := openSQL(t).SqlConn()
	a := NewSQLStore(conn, "a")
	b := NewSQLStore(conn, "b")

	require.NoError(t, a.Set(ctx, "bodyFontWeight", "300"))
	require.NoError(t, a.Set(ctx, "bodySizeScale", "1.25"))
	require.NoError(t, b.Set(ctx, "bodyFontWeight", "700"))

	all, err := a.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bodyFontWeight": "300", "bodySizeScale": "1.25"}, all)

	require.NoError(t, a.Clear(ctx))
	all, err = a.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	v, err := b.Get(ctx, "bodyFontWeight")
	require.NoError(t, err)
	assert.Equal(t, "700", v)
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(context.Background(), "k", "v"))
	snap := m.Snapshot()
	snap["k"] = "changed"
	v, _ := m.Get(context.Background(), "k")
	assert.Equal(t, "v", v)
}

func TestApplyBatch(t *testing.T) {
	d := openSQL(t)
	stores := map[string]Store{
		"memory": NewMemory(),
		"sql":    NewSQLStore(d.SqlConn(), "session-a"),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "customBackground", "#000000"))

			require.NoError(t, Apply(ctx, s, Batch{
				Set:    map[string]string{"colorMode": "popular", "background": "#ffffff"},
				Delete: []string{"customBackground"},
			}))

			v, err := s.Get(ctx, "colorMode")
			require.NoError(t, err)
			assert.Equal(t, "popular", v)
			_, ok, err := Lookup(ctx, s, "customBackground")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLApplyRollsBack(t *testing.T) {
	ctx := context.Background()
	conn := openSQL(t).SqlConn()
	_, err := conn.ExecCtx(ctx, "CREATE TRIGGER reject_weight BEFORE INSERT ON prefs "+
		"WHEN NEW.`key` = 'headingFontWeight' BEGIN SELECT RAISE(ABORT, 'rejected'); END")
	require.NoError(t, err)

	s := NewSQLStore(conn, "a")
	err = s.Apply(ctx, Batch{Set: map[string]string{
		"bodyFontWeight":      "400",
		"headingFontWeight":   "700",
		"selectedHeadingFont": "Inter",
	}})
	require.Error(t, err)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
