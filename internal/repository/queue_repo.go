package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// ErrGuardFailed signals that a version/status-guarded update matched zero
// rows. The service layer turns it into NotFound, InvalidTransition, or
// Conflict after inspecting the current row.
var ErrGuardFailed = errors.New("queue: guarded update matched no rows")

// QueueRepo exclusively owns the moderation_queue table.
type QueueRepo struct {
	pool *pgxpool.Pool
}

func NewQueueRepo(pool *pgxpool.Pool) *QueueRepo {
	return &QueueRepo{pool: pool}
}

const queueColumns = `
	id, review_id, hostel_id, status, priority_score,
	requires_immediate_attention, assigned_to, reason, version,
	created_at, assigned_at, processing_started_at, processing_completed_at`

func scanEntry(row pgx.Row) (*model.ModerationQueueEntry, error) {
	var e model.ModerationQueueEntry
	err := row.Scan(
		&e.ID, &e.ReviewID, &e.HostelID, &e.Status, &e.PriorityScore,
		&e.RequiresImmediateAttention, &e.AssignedTo, &e.Reason, &e.Version,
		&e.CreatedAt, &e.AssignedAt, &e.ProcessingStartedAt, &e.ProcessingCompletedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert enqueues a review. Idempotent: when an entry already exists for
// the review, the existing entry is returned unchanged and created=false.
func (r *QueueRepo) Insert(ctx context.Context, e *model.ModerationQueueEntry) (*model.ModerationQueueEntry, bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO moderation_queue (
			id, review_id, hostel_id, status, priority_score,
			requires_immediate_attention, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (review_id) DO NOTHING
		RETURNING`+queueColumns,
		e.ID, e.ReviewID, e.HostelID, e.Status, e.PriorityScore,
		e.RequiresImmediateAttention, e.Reason)

	inserted, err := scanEntry(row)
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetByReviewID(ctx, e.ReviewID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Get returns a queue entry by ID.
func (r *QueueRepo) Get(ctx context.Context, entryID string) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT`+queueColumns+` FROM moderation_queue WHERE id = $1`, entryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("queue entry %s not found", entryID)
	}
	return e, err
}

// GetByReviewID returns the queue entry for a review.
func (r *QueueRepo) GetByReviewID(ctx context.Context, reviewID string) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT`+queueColumns+` FROM moderation_queue WHERE review_id = $1`, reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("no queue entry for review %s", reviewID)
	}
	return e, err
}

// Assign moves pending|escalated → in_review under the version guard.
func (r *QueueRepo) Assign(ctx context.Context, entryID, moderatorID string, version int) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE moderation_queue
		SET status = 'in_review',
		    assigned_to = $2,
		    assigned_at = NOW(),
		    processing_started_at = COALESCE(processing_started_at, NOW()),
		    version = version + 1
		WHERE id = $1 AND version = $3 AND status IN ('pending', 'escalated')
		RETURNING`+queueColumns,
		entryID, moderatorID, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGuardFailed
	}
	return e, err
}

// Escalate raises priority, flags urgency, and moves to escalated.
func (r *QueueRepo) Escalate(ctx context.Context, entryID, reason string, newPriority float64, version int) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE moderation_queue
		SET status = 'escalated',
		    requires_immediate_attention = TRUE,
		    priority_score = $2,
		    reason = $3,
		    version = version + 1
		WHERE id = $1 AND version = $4 AND status IN ('pending', 'in_review')
		RETURNING`+queueColumns,
		entryID, newPriority, reason, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGuardFailed
	}
	return e, err
}

// Complete closes an entry from in_review or escalated.
func (r *QueueRepo) Complete(ctx context.Context, entryID string, version int) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE moderation_queue
		SET status = 'completed',
		    processing_completed_at = NOW(),
		    version = version + 1
		WHERE id = $1 AND version = $2 AND status IN ('in_review', 'escalated')
		RETURNING`+queueColumns,
		entryID, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGuardFailed
	}
	return e, err
}

// Cancel closes an entry that no longer needs a decision.
func (r *QueueRepo) Cancel(ctx context.Context, entryID, reason string, version int) (*model.ModerationQueueEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE moderation_queue
		SET status = 'cancelled',
		    reason = $2,
		    processing_completed_at = NOW(),
		    version = version + 1
		WHERE id = $1 AND version = $3 AND status IN ('pending', 'in_review')
		RETURNING`+queueColumns,
		entryID, reason, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGuardFailed
	}
	return e, err
}

// List returns queue entries in working order: urgent first, then
// descending priority, then oldest first. A strict three-key sort so
// urgency is never starved by stale low-priority backlog.
func (r *QueueRepo) List(ctx context.Context, f model.QueueFilter) ([]model.ModerationQueueEntry, error) {
	query := `SELECT` + queueColumns + `
		FROM moderation_queue
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR assigned_to = $2)
		  AND priority_score >= $3
		ORDER BY requires_immediate_attention DESC, priority_score DESC, created_at ASC`

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT $4`

	rows, err := r.pool.Query(ctx, query, string(f.Status), f.AssignedTo, f.MinPriority, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ModerationQueueEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Stats summarizes the open backlog.
func (r *QueueRepo) Stats(ctx context.Context) (*model.QueueStats, error) {
	var s model.QueueStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in_review'),
			COUNT(*) FILTER (WHERE status = 'escalated'),
			COUNT(*) FILTER (WHERE requires_immediate_attention AND status NOT IN ('completed', 'cancelled')),
			EXTRACT(EPOCH FROM NOW() - MIN(created_at) FILTER (WHERE status = 'pending'))
		FROM moderation_queue`).
		Scan(&s.PendingCount, &s.InReviewCount, &s.EscalatedCount, &s.UrgentCount, &s.OldestPendingAge)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
