package kv

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const prefsTable = "`prefs`"

// SQLStore keeps preferences in the prefs table, one scope per session.
type SQLStore struct {
	conn  sqlx.SqlConn
	scope string
}

// NewSQLStore returns the store for one scope.
func NewSQLStore(conn sqlx.SqlConn, scope string) *SQLStore {
	return &SQLStore{conn: conn, scope: scope}
}

// Scope returns the session scope of the store.
func (s *SQLStore) Scope() string {
	return s.scope
}

// Get returns the value of key.
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := fmt.Sprintf("select `value` from %s where `scope` = ? and `key` = ? limit 1", prefsTable)
	err := s.conn.QueryRowCtx(ctx, &value, query, s.scope, key)
	switch {
	case errors.Is(err, sqlx.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

var (
	upsertQuery = fmt.Sprintf("insert into %s (`scope`, `key`, `value`, `updated_at`) values (?, ?, ?, CURRENT_TIMESTAMP) "+
		"on conflict(`scope`, `key`) do update set `value` = excluded.`value`, `updated_at` = CURRENT_TIMESTAMP", prefsTable)
	deleteQuery = fmt.Sprintf("delete from %s where `scope` = ? and `key` = ?", prefsTable)
)

// Set stores value under key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.conn.ExecCtx(ctx, upsertQuery, s.scope, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecCtx(ctx, deleteQuery, s.scope, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Apply writes the batch in one transaction.
func (s *SQLStore) Apply(ctx context.Context, b Batch) error {
	return s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, key := range slices.Sorted(maps.Keys(b.Set)) {
			if _, err := session.ExecCtx(ctx, upsertQuery, s.scope, key, b.Set[key]); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
		for _, key := range b.Delete {
			if _, err := session.ExecCtx(ctx, deleteQuery, s.scope, key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// All returns every pair of the scope.
func (s *SQLStore) All(ctx context.Context) (map[string]string, error) {
	type pair struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	var rows []pair
	query := fmt.Sprintf("select `key`, `value` from %s where `scope` = ? order by `key`", prefsTable)
	if err := s.conn.QueryRowsCtx(ctx, &rows, query, s.scope); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// Clear removes every pair of the scope.
func (s *SQLStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf("delete from %s where `scope` = ?", prefsTable)
	_, err := s.conn.ExecCtx(ctx, query, s.scope)
	return err
}
