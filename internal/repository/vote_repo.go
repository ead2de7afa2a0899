package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
)

// VoteRepo owns the review_votes table. The (review_id, voter_id) unique
// constraint is the concurrency guard for same-voter races: the storage
// layer serializes them, last writer wins.
type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Cast inserts a vote or updates an existing one from the same voter.
// On re-vote the previous kind is preserved and is_changed is set so a
// changed vote stays distinguishable from a fresh one in the audit data.
// A NOTIFY feeds the rank worker; the synchronous score recompute happens
// in the service layer regardless.
func (r *VoteRepo) Cast(ctx context.Context, reviewID, voterID string, kind model.VoteKind, weight float64, verified bool, ipHash string) (*model.Vote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var v model.Vote
	err = tx.QueryRow(ctx, `
		INSERT INTO review_votes (review_id, voter_id, kind, weight, is_verified_voter, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (review_id, voter_id) DO UPDATE
		SET previous_kind = review_votes.kind,
		    kind = EXCLUDED.kind,
		    weight = EXCLUDED.weight,
		    is_verified_voter = EXCLUDED.is_verified_voter,
		    is_changed = TRUE,
		    updated_at = NOW()
		RETURNING id, review_id, voter_id, kind, weight, is_verified_voter,
		          is_changed, previous_kind, created_at, updated_at`,
		reviewID, voterID, kind, weight, verified, ipHash).Scan(
		&v.ID, &v.ReviewID, &v.VoterID, &v.Kind, &v.Weight, &v.IsVerifiedVoter,
		&v.IsChanged, &v.PreviousKind, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('review_vote_changes', $1)`, reviewID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &v, nil
}

// Remove deletes a voter's vote on a review. Returns false when no vote
// existed.
func (r *VoteRepo) Remove(ctx context.Context, reviewID, voterID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM review_votes WHERE review_id = $1 AND voter_id = $2`,
		reviewID, voterID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	// DELETE has no row trigger wired, so notify the rank worker manually.
	_, err = tx.Exec(ctx, `SELECT pg_notify('review_vote_changes', $1)`, reviewID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

// Tally returns raw and weighted counts for one review.
func (r *VoteRepo) Tally(ctx context.Context, reviewID string) (*model.VoteTally, error) {
	var t model.VoteTally
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'helpful'),
			COUNT(*) FILTER (WHERE kind = 'not_helpful'),
			COUNT(*),
			COALESCE(SUM(weight) FILTER (WHERE kind = 'helpful'), 0),
			COALESCE(SUM(weight) FILTER (WHERE kind = 'not_helpful'), 0)
		FROM review_votes
		WHERE review_id = $1`,
		reviewID).Scan(&t.Helpful, &t.NotHelpful, &t.Total, &t.WeightedHelpful, &t.WeightedNotHelpful)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// VoterStats returns a voter's history for credibility weighting.
func (r *VoteRepo) VoterStats(ctx context.Context, voterID string) (totalVotes int, verifiedVotes int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_verified_voter)
		FROM review_votes
		WHERE voter_id = $1`,
		voterID).Scan(&totalVotes, &verifiedVotes)
	return totalVotes, verifiedVotes, err
}
