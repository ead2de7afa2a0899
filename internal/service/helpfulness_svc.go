package service

import (
	"context"
	"math"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// z values for the supported confidence levels.
const (
	z95 = 1.96
	z90 = 1.645
)

// HelpfulnessService recomputes the derived helpfulness score after vote
// changes and maintains rankings. It is the sole writer of the score table.
type HelpfulnessService struct {
	votes   *repository.VoteRepo
	scores  *repository.HelpfulnessRepo
	reviews *repository.ReviewRepo
}

func NewHelpfulnessService(votes *repository.VoteRepo, scores *repository.HelpfulnessRepo, reviews *repository.ReviewRepo) *HelpfulnessService {
	return &HelpfulnessService{votes: votes, scores: scores, reviews: reviews}
}

// CalculateWilsonScore returns the lower bound of the Wilson confidence
// interval for the true helpful proportion:
//
//	(phat + z²/2n − z·sqrt((phat(1−phat) + z²/4n)/n)) / (1 + z²/n)
//
// This deliberately outranks naive helpful/total: a 3/3 review must rank
// below a 600/650 one because three votes say almost nothing about the
// true proportion. Clamped to [0,1], rounded to 6 decimals; zero votes
// score zero.
func CalculateWilsonScore(helpful, total int, confidence float64) float64 {
	if total == 0 {
		return 0
	}

	z := z95
	if confidence == 0.90 {
		z = z90
	}

	n := float64(total)
	phat := float64(helpful) / n

	score := (phat + z*z/(2*n) - z*math.Sqrt((phat*(1-phat)+z*z/(4*n))/n)) / (1 + z*z/n)

	score = math.Max(0, math.Min(1, score))
	return math.Round(score*1e6) / 1e6
}

// Recompute rebuilds the full score row for a review from the current vote
// tally. Percentage and Wilson score are computed together from the same
// counts so they can never drift apart. Idempotent: recomputing twice from
// the same counts yields the same row.
func (s *HelpfulnessService) Recompute(ctx context.Context, reviewID string) (*model.HelpfulnessScore, error) {
	tally, err := s.votes.Tally(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	score := &model.HelpfulnessScore{
		ReviewID:           reviewID,
		HostelID:           review.HostelID,
		HelpfulCount:       tally.Helpful,
		NotHelpfulCount:    tally.NotHelpful,
		TotalVotes:         tally.Total,
		WeightedHelpful:    tally.WeightedHelpful,
		WeightedNotHelpful: tally.WeightedNotHelpful,
		WilsonScore:        CalculateWilsonScore(tally.Helpful, tally.Total, 0.95),
	}
	if tally.Total > 0 {
		pct := float64(tally.Helpful) / float64(tally.Total) * 100
		score.HelpfulnessPercentage = math.Round(pct*100) / 100
	}

	if err := s.scores.Upsert(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

// Get returns the stored score for one review.
func (s *HelpfulnessService) Get(ctx context.Context, reviewID string) (*model.HelpfulnessScore, error) {
	return s.scores.Get(ctx, reviewID)
}

// UpdateRankings re-sorts all scores within a scope and assigns 1-based
// ranks. Ties keep insertion order (stable sort in SQL via the id
// tie-break); callers needing a different tie-break must pre-sort.
func (s *HelpfulnessService) UpdateRankings(ctx context.Context, scope model.RankScope) (int, error) {
	if scope == model.RankScopeHostel {
		return s.scores.UpdateHostelRanks(ctx)
	}
	return s.scores.UpdateGlobalRanks(ctx)
}
