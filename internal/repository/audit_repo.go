package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// AuditRepo owns the append-only moderation_log table. Rows are never
// updated or deleted; the table is the audit trail of record.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Append writes one ledger entry. Pure insert; the only failure mode is a
// storage error.
func (r *AuditRepo) Append(ctx context.Context, e *model.ModerationLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO moderation_log (
			id, review_id, action, actor_id, is_automated,
			previous_status, new_status, reason, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		e.ID, e.ReviewID, e.Action, e.ActorID, e.IsAutomated,
		e.PreviousStatus, e.NewStatus, e.Reason, e.Confidence).
		Scan(&e.CreatedAt)
}

// History returns a review's full moderation trail, oldest first.
func (r *AuditRepo) History(ctx context.Context, reviewID string) ([]model.ModerationLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, review_id, action, actor_id, is_automated,
		       previous_status, new_status, reason, confidence, created_at
		FROM moderation_log
		WHERE review_id = $1
		ORDER BY created_at ASC`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ModerationLogEntry{}
	for rows.Next() {
		var e model.ModerationLogEntry
		err := rows.Scan(&e.ID, &e.ReviewID, &e.Action, &e.ActorID, &e.IsAutomated,
			&e.PreviousStatus, &e.NewStatus, &e.Reason, &e.Confidence, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ActionCounts returns per-action totals split by automation, for the
// performance aggregation.
func (r *AuditRepo) ActionCounts(ctx context.Context) (actions map[string]int, actors map[string]int, automated int, total int, err error) {
	rows, err := r.pool.Query(ctx, `
		SELECT action, COALESCE(actor_id, ''), is_automated, COUNT(*)
		FROM moderation_log
		GROUP BY action, actor_id, is_automated`)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	defer rows.Close()

	actions = make(map[string]int)
	actors = make(map[string]int)
	for rows.Next() {
		var action, actor string
		var isAutomated bool
		var count int
		if err := rows.Scan(&action, &actor, &isAutomated, &count); err != nil {
			return nil, nil, 0, 0, err
		}
		actions[action] += count
		if actor != "" {
			actors[actor] += count
		}
		if isAutomated {
			automated += count
		}
		total += count
	}
	return actions, actors, automated, total, rows.Err()
}
