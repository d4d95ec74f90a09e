// Package kv persists customizer preferences as string key/value pairs.
package kv

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrNotFound is returned by Get for keys that were never set or were deleted.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key/value store scoped to one customizer session.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Lookup returns the stored value and whether it exists. Errors other than
// ErrNotFound are returned as is.
func Lookup(ctx context.Context, s Store, key string) (string, bool, error) {
	v, err := s.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return v, true, nil
}

// Batch is a group of writes that land together.
type Batch struct {
	Set    map[string]string
	Delete []string
}

// Batcher is implemented by stores that apply a batch atomically.
type Batcher interface {
	Apply(ctx context.Context, b Batch) error
}

// Apply writes b to s. Batchers apply it atomically; other stores get the
// sets in key order followed by the deletes.
func Apply(ctx context.Context, s Store, b Batch) error {
	if bs, ok := s.(Batcher); ok {
		return bs.Apply(ctx, b)
	}
	for _, key := range slices.Sorted(maps.Keys(b.Set)) {
		if err := s.Set(ctx, key, b.Set[key]); err != nil {
			return err
		}
	}
	for _, key := range b.Delete {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value of key.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Apply writes the batch under one lock.
func (m *Memory) Apply(_ context.Context, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.data, b.Set)
	for _, key := range b.Delete {
		delete(m.data, key)
	}
	return nil
}

// Snapshot returns a copy of every pair.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
