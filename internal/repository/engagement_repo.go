package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// EngagementRepo owns the review_engagement table plus the review_viewers
// dedup table backing the unique-viewer counter.
type EngagementRepo struct {
	pool *pgxpool.Pool
}

func NewEngagementRepo(pool *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{pool: pool}
}

// ensure creates the engagement row on first touch.
func (r *EngagementRepo) ensure(ctx context.Context, tx pgx.Tx, reviewID string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO review_engagement (review_id) VALUES ($1)
		ON CONFLICT (review_id) DO NOTHING`, reviewID)
	return err
}

// TrackView bumps view_count, stamps last_viewed_at, and counts the viewer
// once toward unique_viewers.
func (r *EngagementRepo) TrackView(ctx context.Context, reviewID, viewerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.ensure(ctx, tx, reviewID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE review_engagement
		SET view_count = view_count + 1, last_viewed_at = NOW(),
		    last_activity_at = NOW(), updated_at = NOW()
		WHERE review_id = $1`, reviewID)
	if err != nil {
		return err
	}

	if viewerID != "" {
		tag, err := tx.Exec(ctx, `
			INSERT INTO review_viewers (review_id, viewer_id)
			VALUES ($1, $2)
			ON CONFLICT (review_id, viewer_id) DO NOTHING`,
			reviewID, viewerID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			_, err = tx.Exec(ctx, `
				UPDATE review_engagement
				SET unique_viewers = unique_viewers + 1
				WHERE review_id = $1`, reviewID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// counter columns allowed for Increment. Guarding here keeps the column
// name injection-safe even though callers are internal.
var engagementColumns = map[model.EngagementEvent]string{
	model.EventShare:    "share_count",
	model.EventBookmark: "bookmark_count",
	model.EventBooking:  "influenced_bookings",
	model.EventInquiry:  "influenced_inquiries",
}

// Increment bumps the counter for a non-view event.
func (r *EngagementRepo) Increment(ctx context.Context, reviewID string, event model.EngagementEvent) error {
	col, ok := engagementColumns[event]
	if !ok {
		return apperr.Validationf("unknown engagement event %q", event)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.ensure(ctx, tx, reviewID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE review_engagement SET `+col+` = `+col+` + 1, last_activity_at = NOW(), updated_at = NOW() WHERE review_id = $1`,
		reviewID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get returns the engagement record for one review.
func (r *EngagementRepo) Get(ctx context.Context, reviewID string) (*model.EngagementRecord, error) {
	var e model.EngagementRecord
	err := r.pool.QueryRow(ctx, `
		SELECT review_id, view_count, unique_viewers, share_count, bookmark_count,
		       influenced_bookings, influenced_inquiries,
		       engagement_score, quality_score, decay_factor,
		       last_viewed_at, last_activity_at, updated_at
		FROM review_engagement
		WHERE review_id = $1`,
		reviewID).Scan(
		&e.ReviewID, &e.ViewCount, &e.UniqueViewers, &e.ShareCount, &e.BookmarkCount,
		&e.InfluencedBookings, &e.InfluencedInquiries,
		&e.EngagementScore, &e.QualityScore, &e.DecayFactor,
		&e.LastViewedAt, &e.LastActivityAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("no engagement record for review %s", reviewID)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateScores persists freshly derived scores and the decay factor.
// last_activity_at is deliberately untouched: a refresh is bookkeeping,
// not engagement, and must not reset the staleness clock.
func (r *EngagementRepo) UpdateScores(ctx context.Context, reviewID string, engagement, quality, decay float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE review_engagement
		SET engagement_score = $1, quality_score = $2, decay_factor = $3, updated_at = NOW()
		WHERE review_id = $4`,
		engagement, quality, decay, reviewID)
	return err
}

// ListActiveSince returns review IDs with a tracked event after the cutoff,
// for the periodic decay refresh. Keyed on last_activity_at so refreshed
// rows age out of the window once real engagement stops.
func (r *EngagementRepo) ListActiveSince(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT review_id FROM review_engagement
		WHERE last_activity_at > $1`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
