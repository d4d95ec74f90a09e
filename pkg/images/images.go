// Package images stores the pictures users drop into the preview slots.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"

	"github.com/h2non/filetype"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// DefaultMaxBytes bounds one upload.
const DefaultMaxBytes = 5 << 20

var (
	ErrNotImage    = errors.New("file is not an image")
	ErrUnknownSlot = errors.New("unknown image slot")
	ErrTooLarge    = errors.New("image too large")
	ErrNotFound    = errors.New("image not found")
)

// DefaultSlots are the image containers of the preview page.
var DefaultSlots = []string{"hero", "card", "gallery"}

// Image is an uploaded picture.
type Image struct {
	Slot string `db:"slot" json:"slot"`
	MIME string `db:"mime" json:"mime"`
	Data []byte `db:"data" json:"-"`
	Size int64  `db:"size" json:"size"`
}

// DataURL embeds the image in a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// CSS is the background declaration of a filled slot.
func (i Image) CSS() string {
	return fmt.Sprintf(`background-image: url("%s"); background-size: cover; background-position: center;`, i.DataURL())
}

// Sniff returns the MIME type of image content, judged by its magic bytes.
func Sniff(data []byte) (string, error) {
	if !filetype.IsImage(data) {
		return "", ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", ErrNotImage
	}
	return kind.MIME.Value, nil
}

// Store keeps one image per session and slot in the images table.
type Store struct {
	conn     sqlx.SqlConn
	slots    []string
	maxBytes int64
}

// NewStore creates a store accepting the given slots.
func NewStore(conn sqlx.SqlConn, slots []string, maxBytes int64) *Store {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{conn: conn, slots: slots, maxBytes: maxBytes}
}

// Slots lists the accepted slots.
func (s *Store) Slots() []string {
	return slices.Clone(s.slots)
}

// MaxBytes is the largest accepted upload.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

func (s *Store) checkSlot(slot string) error {
	if !slices.Contains(s.slots, slot) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return nil
}

// Put validates and stores an upload, replacing the slot's previous image.
func (s *Store) Put(ctx context.Context, scope, slot string, data []byte) (Image, error) {
	if err := s.checkSlot(slot); err != nil {
		return Image{}, err
	}
	if int64(len(data)) > s.maxBytes {
		uploads.Inc("too_large")
		return Image{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	mime, err := Sniff(data)
	if err != nil {
		uploads.Inc("rejected")
		return Image{}, err
	}

	img := Image{Slot: slot, MIME: mime, Data: data, Size: int64(len(data))}
	query := "insert into `images` (`scope`, `slot`, `mime`, `data`, `size`) values (?, ?, ?, ?, ?) " +
		"on conflict(`scope`, `slot`) do update set `mime` = excluded.`mime`, `data` = excluded.`data`, " +
		"`size` = excluded.`size`, `created_at` = CURRENT_TIMESTAMP"
	if _, err := s.conn.ExecCtx(ctx, query, scope, slot, img.MIME, img.Data, img.Size); err != nil {
		return Image{}, fmt.Errorf("store image: %w", err)
	}
	uploads.Inc("stored")
	return img, nil
}

// Get returns the image of a slot.
func (s *Store) Get(ctx context.Context, scope, slot string) (Image, error) {
	if err := s.checkSlot(slot); err != nil {
		return Image{}, err
	}
	var img Image
	query := "select `slot`, `mime`, `data`, `size` from `images` where `scope` = ? and `slot` = ? limit 1"
	err := s.conn.QueryRowCtx(ctx, &img, query, scope, slot)
	switch {
	case errors.Is(err, sqlx.ErrNotFound):
		return Image{}, ErrNotFound
	case err != nil:
		return Image{}, err
	}
	return img, nil
}

// All returns every filled slot of a session.
func (s *Store) All(ctx context.Context, scope string) (map[string]Image, error) {
	var rows []Image
	query := "select `slot`, `mime`, `data`, `size` from `images` where `scope` = ?"
	if err := s.conn.QueryRowsCtx(ctx, &rows, query, scope); err != nil {
		return nil, err
	}
	out := make(map[string]Image, len(rows))
	for _, img := range rows {
		out[img.Slot] = img
	}
	return out, nil
}

// Delete clears a slot.
func (s *Store) Delete(ctx context.Context, scope, slot string) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	_, err := s.conn.ExecCtx(ctx, "delete from `images` where `scope` = ? and `slot` = ?", scope, slot)
	return err
}
