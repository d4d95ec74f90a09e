package images

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeblew999/plat-theme/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}

func newStore(t *testing.T, maxBytes int64) *Store {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "images.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return NewStore(d.SqlConn(), nil, maxBytes)
}

func TestSniff(t *testing.T) {
	mime, err := Sniff(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = Sniff(jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	_, err = Sniff([]byte("%PDF-1.7 not an image"))
	assert.ErrorIs(t, err, ErrNotImage)
	_, err = Sniff(nil)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 0)

	img, err := s.Put(ctx, "sess", "hero", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.True(t, strings.HasPrefix(img.DataURL(), "data:image/png;base64,iVBORw0KGgo"))

	_, err = s.Put(ctx, "sess", "hero", jpegHeader)
	require.NoError(t, err)
	got, err := s.Get(ctx, "sess", "hero")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", got.MIME)
	assert.Equal(t, jpegHeader, got.Data)

	_, err = s.Get(ctx, "other", "hero")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.All(ctx, "sess")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Delete(ctx, "sess", "hero"))
	_, err = s.Get(ctx, "sess", "hero")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejects(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 12)

	_, err := s.Put(ctx, "sess", "banner", pngHeader)
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = s.Put(ctx, "sess", "hero", pngHeader)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.Put(ctx, "sess", "card", []byte("plain text"))
	assert.ErrorIs(t, err, ErrNotImage)

	assert.ErrorIs(t, s.Delete(ctx, "sess", "banner"), ErrUnknownSlot)
}
