// Package queue provides font warm-up job operations using goqite.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"maragu.dev/goqite"
)

// Job statuses as stored in warm_jobs.
const (
	StatusPending = "pending"
	StatusRetry   = "retry"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// DefaultMaxAttempts bounds how often a job is tried.
const DefaultMaxAttempts = 3

// ErrNotFound is returned for unknown job ids.
var ErrNotFound = errors.New("warm job not found")

// WarmJob asks for a family's weights to be downloaded into the local cache.
type WarmJob struct {
	ID          string    `json:"id"`
	Family      string    `json:"family"`
	Weights     []int     `json:"weights"`
	Status      string    `json:"status,omitempty"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	message goqite.ID
}

// Queue manages warm jobs. goqite carries the work; warm_jobs tracks status.
type Queue struct {
	conn  sqlx.SqlConn
	queue *goqite.Queue
	name  string

	// Events is optional. When set, lifecycle changes are recorded.
	Events *EventLog
}

// NewQueue creates a queue. The goqite schema must already exist.
func NewQueue(db *sql.DB, conn sqlx.SqlConn, name string) *Queue {
	return &Queue{
		conn: conn,
		queue: goqite.New(goqite.NewOpts{
			DB:   db,
			Name: name,
		}),
		name: name,
	}
}

// Name returns the goqite queue name.
func (q *Queue) Name() string {
	return q.name
}

// Enqueue adds a job to the queue.
func (q *Queue) Enqueue(ctx context.Context, job WarmJob) (string, error) {
	if job.Family == "" {
		return "", errors.New("warm job needs a family")
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = DefaultMaxAttempts
	}
	job.Weights = normalize(job.Weights)
	job.Status = StatusPending
	job.CreatedAt = time.Now().UTC()

	if err := q.store(ctx, job); err != nil {
		return "", fmt.Errorf("store job: %w", err)
	}
	if err := q.send(ctx, job, 0); err != nil {
		return "", err
	}
	q.record(job.ID, EventQueued, strings.Join(weightNames(job.Weights), ","))
	return job.ID, nil
}

// EnqueueOnce enqueues a job unless an identical one is still waiting,
// in which case the waiting job's id is returned.
func (q *Queue) EnqueueOnce(ctx context.Context, job WarmJob) (string, error) {
	weights, err := json.Marshal(normalize(job.Weights))
	if err != nil {
		return "", err
	}

	var id string
	err = q.conn.QueryRowCtx(ctx, &id, `
		SELECT id FROM warm_jobs
		WHERE family = ? AND weights = ? AND status IN (?, ?)
		ORDER BY created_at DESC LIMIT 1
	`, job.Family, string(weights), StatusPending, StatusRetry)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sqlx.ErrNotFound):
		return q.Enqueue(ctx, job)
	default:
		return "", err
	}
}

// Receive gets the next job. It returns nil when the queue is empty.
func (q *Queue) Receive(ctx context.Context) (*WarmJob, error) {
	msg, err := q.queue.Receive(ctx)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}

	var job WarmJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		// An unreadable body can never succeed.
		_ = q.queue.Delete(ctx, msg.ID)
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	job.message = msg.ID
	return &job, nil
}

// Extend keeps a received job invisible to other workers for d.
func (q *Queue) Extend(ctx context.Context, job *WarmJob, d time.Duration) error {
	return q.queue.Extend(ctx, job.message, d)
}

// Delete removes a received job's message without touching its status.
func (q *Queue) Delete(ctx context.Context, job *WarmJob) error {
	if job.message == "" {
		return nil
	}
	return q.queue.Delete(ctx, job.message)
}

// MarkDone finishes a job.
func (q *Queue) MarkDone(ctx context.Context, job *WarmJob) error {
	if err := q.Delete(ctx, job); err != nil {
		return err
	}
	q.record(job.ID, EventCached, "")
	return q.updateStatus(ctx, job.ID, StatusDone, job.Attempts, "")
}

// MarkRetry puts the job back on the queue after backoff. job.Attempts must
// already count the failed attempt.
func (q *Queue) MarkRetry(ctx context.Context, job *WarmJob, backoff time.Duration, cause error) error {
	if err := q.Delete(ctx, job); err != nil {
		return err
	}
	job.Error = cause.Error()
	if err := q.send(ctx, *job, backoff); err != nil {
		return err
	}
	q.record(job.ID, EventRetry, fmt.Sprintf("attempt %d, backoff %s: %v", job.Attempts, backoff, cause))
	return q.updateStatus(ctx, job.ID, StatusRetry, job.Attempts, job.Error)
}

// MarkFailed gives up on a job.
func (q *Queue) MarkFailed(ctx context.Context, job *WarmJob, cause error) error {
	if err := q.Delete(ctx, job); err != nil {
		return err
	}
	q.record(job.ID, EventFailed, cause.Error())
	return q.updateStatus(ctx, job.ID, StatusFailed, job.Attempts, cause.Error())
}

// Get returns a job by id.
func (q *Queue) Get(ctx context.Context, id string) (*WarmJob, error) {
	var row jobRow
	err := q.conn.QueryRowCtx(ctx, &row, `SELECT `+jobColumns+` FROM warm_jobs WHERE id = ?`, id)
	if errors.Is(err, sqlx.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.job(), nil
}

// List returns jobs, newest first, with an optional status filter.
func (q *Queue) List(ctx context.Context, status string, limit int) ([]*WarmJob, error) {
	query := `SELECT ` + jobColumns + ` FROM warm_jobs`
	args := []any{}
	if status != "" && status != "all" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	var rows []jobRow
	if err := q.conn.QueryRowsCtx(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	jobs := make([]*WarmJob, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, r.job())
	}
	return jobs, nil
}

// Stats counts jobs by status.
func (q *Queue) Stats(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := q.conn.QueryRowsCtx(ctx, &rows, `SELECT status, COUNT(*) AS count FROM warm_jobs GROUP BY status`); err != nil {
		return nil, err
	}
	stats := make(map[string]int, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}

func (q *Queue) send(ctx context.Context, job WarmJob, delay time.Duration) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.queue.Send(ctx, goqite.Message{Body: body, Delay: delay}); err != nil {
		return fmt.Errorf("send to queue: %w", err)
	}
	return nil
}

func (q *Queue) store(ctx context.Context, job WarmJob) error {
	weights, err := json.Marshal(job.Weights)
	if err != nil {
		return err
	}
	_, err = q.conn.ExecCtx(ctx, `
		INSERT INTO warm_jobs (id, family, weights, status, attempts, max_attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
	`, job.ID, job.Family, string(weights), job.Status, job.MaxAttempts, job.CreatedAt, job.CreatedAt)
	return err
}

func (q *Queue) updateStatus(ctx context.Context, id, status string, attempts int, errStr string) error {
	var e sql.NullString
	if errStr != "" {
		e = sql.NullString{String: errStr, Valid: true}
	}
	_, err := q.conn.ExecCtx(ctx, `
		UPDATE warm_jobs
		SET status = ?, attempts = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, status, attempts, e, time.Now().UTC(), id)
	return err
}

func (q *Queue) record(id string, kind EventKind, details string) {
	if q.Events != nil {
		q.Events.Record(id, kind, details)
	}
}

func weightNames(weights []int) []string {
	names := make([]string, len(weights))
	for i, w := range weights {
		names[i] = strconv.Itoa(w)
	}
	return names
}

const jobColumns = "id, family, weights, status, attempts, max_attempts, error, created_at"

type jobRow struct {
	ID          string         `db:"id"`
	Family      string         `db:"family"`
	Weights     string         `db:"weights"`
	Status      string         `db:"status"`
	Attempts    int            `db:"attempts"`
	MaxAttempts int            `db:"max_attempts"`
	Error       sql.NullString `db:"error"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r jobRow) job() *WarmJob {
	job := &WarmJob{
		ID:          r.ID,
		Family:      r.Family,
		Status:      r.Status,
		Attempts:    r.Attempts,
		MaxAttempts: r.MaxAttempts,
		Error:       r.Error.String,
		CreatedAt:   r.CreatedAt,
	}
	_ = json.Unmarshal([]byte(r.Weights), &job.Weights)
	return job
}

func normalize(weights []int) []int {
	out := slices.Clone(weights)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}
