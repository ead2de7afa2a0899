package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// Engagement score term weights. The helpfulness-vote term is the largest
// single contributor; raw exposure counts are log-damped so a 10,000-view
// review cannot dominate 100x over a 100-view one.
const (
	viewWeight      = 0.2
	shareWeight     = 0.2
	bookmarkWeight  = 0.15
	influenceWeight = 0.15
	voteWeight      = 0.3
)

// EngagementService accumulates interaction signals and derives the
// decayed engagement score and the quality score.
type EngagementService struct {
	repo         *repository.EngagementRepo
	scores       *repository.HelpfulnessRepo
	reviews      *repository.ReviewRepo
	cache        *CacheService
	halfLifeDays float64
}

func NewEngagementService(repo *repository.EngagementRepo, scores *repository.HelpfulnessRepo,
	reviews *repository.ReviewRepo, cache *CacheService, halfLifeDays float64) *EngagementService {
	return &EngagementService{
		repo:         repo,
		scores:       scores,
		reviews:      reviews,
		cache:        cache,
		halfLifeDays: halfLifeDays,
	}
}

// Track records one engagement event and refreshes the derived scores.
// viewerID is only meaningful for view events (unique-viewer dedup).
func (s *EngagementService) Track(ctx context.Context, reviewID string, event model.EngagementEvent, viewerID string) (*model.EngagementRecord, error) {
	if !model.ValidEngagementEvents[event] {
		return nil, apperr.Validationf("unknown engagement event %q", event)
	}

	if _, err := s.reviews.GetReview(ctx, reviewID); err != nil {
		return nil, err
	}

	var err error
	if event == model.EventView {
		err = s.repo.TrackView(ctx, reviewID, viewerID)
	} else {
		err = s.repo.Increment(ctx, reviewID, event)
	}
	if err != nil {
		return nil, err
	}

	return s.Refresh(ctx, reviewID)
}

// Refresh recomputes and persists the engagement and quality scores from
// the current counters. Pure recomputation, safe to repeat.
func (s *EngagementService) Refresh(ctx context.Context, reviewID string) (*model.EngagementRecord, error) {
	rec, err := s.repo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	// The helpfulness score may not exist yet for an unvoted review.
	var wilson float64
	var totalVotes int
	if hs, err := s.scores.Get(ctx, reviewID); err == nil {
		wilson = hs.WilsonScore
		totalVotes = hs.TotalVotes
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	decay := DecayFactor(lastActivity(rec, review.CreatedAt), time.Now().UTC(), s.halfLifeDays)
	engagement := EngagementScore(rec, totalVotes, decay)
	quality := QualityScore(review.Rating, wilson, review.IsVerifiedStay)

	if err := s.repo.UpdateScores(ctx, reviewID, engagement, quality, decay); err != nil {
		return nil, err
	}

	rec.EngagementScore = engagement
	rec.QualityScore = quality
	rec.DecayFactor = decay

	s.invalidate(ctx, reviewID)
	return rec, nil
}

// Get returns the engagement record for one review.
func (s *EngagementService) Get(ctx context.Context, reviewID string) (*model.EngagementRecord, error) {
	return s.repo.Get(ctx, reviewID)
}

// EngagementScore is the log-damped weighted sum of interaction counters
// scaled by the staleness decay factor.
func EngagementScore(rec *model.EngagementRecord, totalVotes int, decay float64) float64 {
	influence := rec.InfluencedBookings + rec.InfluencedInquiries

	raw := viewWeight*math.Log1p(float64(rec.ViewCount)) +
		shareWeight*math.Log1p(float64(rec.ShareCount)) +
		bookmarkWeight*math.Log1p(float64(rec.BookmarkCount)) +
		influenceWeight*math.Log1p(float64(influence)) +
		voteWeight*math.Log1p(float64(totalVotes))

	return math.Round(raw*decay*1e4) / 1e4
}

// QualityScore blends the star rating, the Wilson helpfulness score, and
// stay verification:
//
//	0.4·(rating/5) + 0.4·helpfulness + 0.2·verified
func QualityScore(rating, helpfulness float64, verified bool) float64 {
	v := 0.0
	if verified {
		v = 1.0
	}
	score := 0.4*(rating/5) + 0.4*helpfulness + 0.2*v
	return math.Round(score*1e4) / 1e4
}

// DecayFactor is an exponential staleness decay: 1.0 for fresh activity,
// halving every halfLifeDays days since the last interaction.
func DecayFactor(lastActive, now time.Time, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 1.0
	}
	days := now.Sub(lastActive).Hours() / 24
	if days <= 0 {
		return 1.0
	}
	return math.Pow(0.5, days/halfLifeDays)
}

// lastActivity picks the freshest activity timestamp for decay purposes.
// Only tracked events move LastActivityAt; UpdatedAt also moves on score
// refreshes and would keep a dead review permanently fresh.
func lastActivity(rec *model.EngagementRecord, createdAt time.Time) time.Time {
	if rec.LastActivityAt.After(createdAt) {
		return rec.LastActivityAt
	}
	return createdAt
}

func (s *EngagementService) invalidate(ctx context.Context, reviewID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReview(ctx, reviewID); err != nil {
		log.Printf("cache: invalidate review error: %v", err)
	}
}
