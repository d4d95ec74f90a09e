package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// EventKind names a step in a warm job's life.
type EventKind string

const (
	EventQueued EventKind = "queued"
	EventCached EventKind = "cached"
	EventRetry  EventKind = "retry"
	EventFailed EventKind = "failed"
)

// Event is one entry of a job's history.
type Event struct {
	Kind    EventKind `json:"kind"`
	At      time.Time `json:"at"`
	Details string    `json:"details,omitempty"`
}

// EventLog keeps the history of warm jobs. Writes are buffered and land in
// batches; History only sees flushed entries.
type EventLog struct {
	conn     sqlx.SqlConn
	inserter *sqlx.BulkInserter
}

// NewEventLog creates a log writing to warm_events.
func NewEventLog(conn sqlx.SqlConn) (*EventLog, error) {
	inserter, err := sqlx.NewBulkInserter(conn,
		"insert into `warm_events` (`id`, `job_id`, `event_type`, `timestamp`, `details`) values (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	inserter.SetResultHandler(func(_ sql.Result, err error) {
		if err != nil {
			logx.Errorw("Warm event batch lost", logx.Field("error", err.Error()))
		}
	})
	return &EventLog{conn: conn, inserter: inserter}, nil
}

// Record appends an event for a job.
func (l *EventLog) Record(jobID string, kind EventKind, details string) {
	err := l.inserter.Insert(uuid.New().String(), jobID, string(kind), time.Now().UTC(), details)
	if err != nil {
		logx.Errorw("Warm event dropped",
			logx.Field("job", jobID), logx.Field("kind", kind), logx.Field("error", err.Error()))
	}
}

// History returns a job's events, oldest first.
func (l *EventLog) History(ctx context.Context, jobID string) ([]Event, error) {
	var rows []struct {
		Kind    string         `db:"event_type"`
		At      time.Time      `db:"timestamp"`
		Details sql.NullString `db:"details"`
	}
	err := l.conn.QueryRowsCtx(ctx, &rows,
		"select `event_type`, `timestamp`, `details` from `warm_events` where `job_id` = ? order by `timestamp`, `rowid`", jobID)
	if err != nil {
		return nil, fmt.Errorf("warm history %s: %w", jobID, err)
	}
	events := make([]Event, len(rows))
	for i, r := range rows {
		events[i] = Event{Kind: EventKind(r.Kind), At: r.At, Details: r.Details.String}
	}
	return events, nil
}

// Flush writes buffered events.
func (l *EventLog) Flush() {
	l.inserter.Flush()
}
