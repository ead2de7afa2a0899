package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// HelpfulnessRepo owns the review_helpfulness table: one derived score row
// per review, recomputed whole on every vote mutation.
type HelpfulnessRepo struct {
	pool *pgxpool.Pool
}

func NewHelpfulnessRepo(pool *pgxpool.Pool) *HelpfulnessRepo {
	return &HelpfulnessRepo{pool: pool}
}

// Upsert writes the full recomputed score. Percentage and Wilson score land
// together in one statement so readers never observe a half-updated row.
func (r *HelpfulnessRepo) Upsert(ctx context.Context, s *model.HelpfulnessScore) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO review_helpfulness (
			review_id, hostel_id, helpful_count, not_helpful_count, total_votes,
			weighted_helpful, weighted_not_helpful,
			helpfulness_percentage, wilson_score, last_calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (review_id) DO UPDATE
		SET helpful_count = EXCLUDED.helpful_count,
		    not_helpful_count = EXCLUDED.not_helpful_count,
		    total_votes = EXCLUDED.total_votes,
		    weighted_helpful = EXCLUDED.weighted_helpful,
		    weighted_not_helpful = EXCLUDED.weighted_not_helpful,
		    helpfulness_percentage = EXCLUDED.helpfulness_percentage,
		    wilson_score = EXCLUDED.wilson_score,
		    last_calculated_at = NOW()`,
		s.ReviewID, s.HostelID, s.HelpfulCount, s.NotHelpfulCount, s.TotalVotes,
		s.WeightedHelpful, s.WeightedNotHelpful,
		s.HelpfulnessPercentage, s.WilsonScore)
	return err
}

// Get returns the score row for one review.
func (r *HelpfulnessRepo) Get(ctx context.Context, reviewID string) (*model.HelpfulnessScore, error) {
	var s model.HelpfulnessScore
	err := r.pool.QueryRow(ctx, `
		SELECT review_id, hostel_id, helpful_count, not_helpful_count, total_votes,
		       weighted_helpful, weighted_not_helpful,
		       helpfulness_percentage, wilson_score,
		       global_rank, hostel_rank, last_calculated_at
		FROM review_helpfulness
		WHERE review_id = $1`,
		reviewID).Scan(
		&s.ReviewID, &s.HostelID, &s.HelpfulCount, &s.NotHelpfulCount, &s.TotalVotes,
		&s.WeightedHelpful, &s.WeightedNotHelpful,
		&s.HelpfulnessPercentage, &s.WilsonScore,
		&s.GlobalRank, &s.HostelRank, &s.LastCalculatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("no helpfulness score for review %s", reviewID)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateGlobalRanks rewrites global ranks: descending wilson score,
// insertion order breaking ties. Returns the number of ranked rows.
func (r *HelpfulnessRepo) UpdateGlobalRanks(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE review_helpfulness h
		SET global_rank = ranked.rank
		FROM (
			SELECT review_id,
			       ROW_NUMBER() OVER (ORDER BY wilson_score DESC, id ASC) AS rank
			FROM review_helpfulness
		) ranked
		WHERE h.review_id = ranked.review_id`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// UpdateHostelRanks rewrites per-hostel ranks with the same ordering,
// partitioned by hostel.
func (r *HelpfulnessRepo) UpdateHostelRanks(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE review_helpfulness h
		SET hostel_rank = ranked.rank
		FROM (
			SELECT review_id,
			       ROW_NUMBER() OVER (
			           PARTITION BY hostel_id
			           ORDER BY wilson_score DESC, id ASC
			       ) AS rank
			FROM review_helpfulness
		) ranked
		WHERE h.review_id = ranked.review_id`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
