package service

import (
	"context"
	"log"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// VoteService is the write path of the vote ledger. Every mutation
// synchronously recomputes the review's helpfulness score in the same
// logical flow and invalidates the cache before returning.
type VoteService struct {
	repo        *repository.VoteRepo
	reviews     *repository.ReviewRepo
	helpfulness *HelpfulnessService
	credibility *CredibilityService
	cache       *CacheService
}

func NewVoteService(repo *repository.VoteRepo, reviews *repository.ReviewRepo,
	helpfulness *HelpfulnessService, credibility *CredibilityService, cache *CacheService) *VoteService {
	return &VoteService{
		repo:        repo,
		reviews:     reviews,
		helpfulness: helpfulness,
		credibility: credibility,
		cache:       cache,
	}
}

// Cast records or updates a vote. An omitted weight is derived from
// voter credibility; an explicit weight (zero included) must sit inside
// [0,10] and is used as given.
func (s *VoteService) Cast(ctx context.Context, req model.VoteRequest, ipHash string) (*model.VoteResponse, error) {
	if err := validateVoteRequest(req); err != nil {
		return nil, err
	}
	kind := model.VoteKind(req.Kind)

	// The review must exist before a vote can attach to it.
	if _, err := s.reviews.GetReview(ctx, req.ReviewID); err != nil {
		return nil, err
	}

	var weight float64
	if req.Weight != nil {
		weight = *req.Weight
	} else {
		total, verified, err := s.repo.VoterStats(ctx, req.VoterID)
		if err != nil {
			return nil, err
		}
		weight = s.credibility.EffectiveWeight(total, verified, req.Verified)
	}

	vote, err := s.repo.Cast(ctx, req.ReviewID, req.VoterID, kind, weight, req.Verified, ipHash)
	if err != nil {
		return nil, err
	}

	// Synchronous recompute; the rank worker only handles batch re-ranking.
	score, err := s.helpfulness.Recompute(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.ReviewID)

	tally := model.VoteTally{
		Helpful:            score.HelpfulCount,
		NotHelpful:         score.NotHelpfulCount,
		Total:              score.TotalVotes,
		WeightedHelpful:    score.WeightedHelpful,
		WeightedNotHelpful: score.WeightedNotHelpful,
	}
	return &model.VoteResponse{
		Success:     true,
		IsChanged:   vote.IsChanged,
		Tally:       tally,
		WilsonScore: score.WilsonScore,
	}, nil
}

// validateVoteRequest checks the kind and, when a weight was supplied,
// its range. A nil weight is valid and means credibility derivation.
func validateVoteRequest(req model.VoteRequest) error {
	if !model.ValidVoteKinds[model.VoteKind(req.Kind)] {
		return apperr.Validationf("invalid vote kind %q: must be helpful or not_helpful", req.Kind)
	}
	if req.Weight != nil && (*req.Weight < model.MinVoteWeight || *req.Weight > model.MaxVoteWeight) {
		return apperr.Validationf("weight %.2f out of range [%.0f,%.0f]",
			*req.Weight, model.MinVoteWeight, model.MaxVoteWeight)
	}
	return nil
}

// Remove retracts a vote and recomputes the score.
func (s *VoteService) Remove(ctx context.Context, req model.VoteDeleteRequest) error {
	removed, err := s.repo.Remove(ctx, req.ReviewID, req.VoterID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFoundf("no vote by %s on review %s", req.VoterID, req.ReviewID)
	}

	if _, err := s.helpfulness.Recompute(ctx, req.ReviewID); err != nil {
		return err
	}

	s.invalidate(ctx, req.ReviewID)
	return nil
}

// Tally returns current raw and weighted counts.
func (s *VoteService) Tally(ctx context.Context, reviewID string) (*model.VoteTally, error) {
	return s.repo.Tally(ctx, reviewID)
}

func (s *VoteService) invalidate(ctx context.Context, reviewID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReview(ctx, reviewID); err != nil {
		log.Printf("cache: invalidate review error: %v", err)
	}
}
