package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// ReviewRepo reads the externally-owned reviews table. The engine never
// creates or deletes reviews; the single write-back is the moderation
// status after an approve/reject decision.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// GetReview returns the review snapshot the engine needs.
func (r *ReviewRepo) GetReview(ctx context.Context, reviewID string) (*model.Review, error) {
	var rv model.Review
	err := r.pool.QueryRow(ctx, `
		SELECT review_id, hostel_id, rating, review_text,
		       COALESCE(pros, '{}'), COALESCE(cons, '{}'),
		       is_published, is_verified_stay, created_at
		FROM reviews
		WHERE review_id = $1`,
		reviewID).Scan(
		&rv.ReviewID, &rv.HostelID, &rv.Rating, &rv.Text,
		&rv.Pros, &rv.Cons,
		&rv.IsPublished, &rv.IsVerifiedStay, &rv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("review %s not found", reviewID)
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// SetModerationStatus flows an approve/reject decision back to the review
// store. Approval also publishes the review.
func (r *ReviewRepo) SetModerationStatus(ctx context.Context, reviewID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reviews
		SET moderation_status = $1,
		    is_published = ($1 = $2),
		    updated_at = NOW()
		WHERE review_id = $3`,
		status, model.ReviewStatusApproved, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("review %s not found", reviewID)
	}
	return nil
}
