package service

import (
	"context"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/config"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/oracle"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// Signal bands for the classifier below the policy thresholds. A review is
// only a candidate for auto-approval when every risk signal sits clearly
// inside the clean band, not merely under the violation threshold.
const (
	cleanSpamBand      = 0.2
	cleanToxicityBand  = 0.2
	cleanProfanityBand = 0.3
	minLanguageConf    = 0.5
)

// ModerationService runs the auto-moderation pipeline: call the signal
// oracle, classify, persist the result, and either act on it or enqueue
// the review for human moderation.
type ModerationService struct {
	policy  config.ModerationPolicy
	oracle  oracle.Client
	timeout time.Duration
	results *repository.ModerationRepo
	reviews *repository.ReviewRepo
	queue   *QueueService
	ledger  *AuditService
	cache   *CacheService
}

func NewModerationService(policy config.ModerationPolicy, oc oracle.Client, timeout time.Duration,
	results *repository.ModerationRepo, reviews *repository.ReviewRepo,
	queue *QueueService, ledger *AuditService, cache *CacheService) *ModerationService {
	return &ModerationService{
		policy:  policy,
		oracle:  oc,
		timeout: timeout,
		results: results,
		reviews: reviews,
		queue:   queue,
		ledger:  ledger,
		cache:   cache,
	}
}

// Classify derives the threshold booleans, decision, and confidence from
// raw oracle signals. Pure function of (signals, policy).
func Classify(sig *oracle.Signals, policy config.ModerationPolicy) *model.AutoModerationResult {
	res := &model.AutoModerationResult{
		SpamScore:            sig.SpamScore,
		SentimentScore:       sig.SentimentScore,
		ToxicityScore:        sig.ToxicityScore,
		ProfanityScore:       sig.ProfanityScore,
		ContainsPersonalInfo: sig.ContainsPersonalInfo,
		ContainsHateSpeech:   sig.ContainsHateSpeech,
		DetectedLanguage:     sig.DetectedLanguage,
		LanguageConfidence:   sig.LanguageConfidence,
	}

	res.IsSpam = sig.SpamScore >= policy.SpamThreshold
	res.IsToxic = sig.ToxicityScore >= policy.ToxicityThreshold
	res.HasProfanity = sig.ProfanityScore >= policy.ProfanityThreshold
	// A review reads as authentic when it is not spam-like and the language
	// model recognized it with reasonable confidence.
	res.IsAuthentic = !res.IsSpam && sig.LanguageConfidence >= minLanguageConf

	switch {
	case sig.ContainsHateSpeech || sig.ContainsPersonalInfo:
		// Policy violations that always need human eyes, flagged urgent.
		res.AutoDecision = model.DecisionAutoFlag
		res.DecisionConfidence = 1.0

	case res.IsSpam || res.IsToxic || !res.IsAuthentic:
		res.AutoDecision = model.DecisionAutoReject
		res.DecisionConfidence = round2(math.Max(sig.SpamScore, sig.ToxicityScore))

	case sig.SpamScore < cleanSpamBand && sig.ToxicityScore < cleanToxicityBand &&
		sig.ProfanityScore < cleanProfanityBand:
		res.AutoDecision = model.DecisionAutoApprove
		res.DecisionConfidence = round2(1 - math.Max(sig.SpamScore, math.Max(sig.ToxicityScore, sig.ProfanityScore)))

	default:
		res.AutoDecision = model.DecisionManualReview
		res.DecisionConfidence = round2(1 - math.Max(sig.SpamScore, sig.ToxicityScore))
	}

	return res
}

// ShouldAutoApprove reports whether the result clears every bar for an
// unattended approval.
func (s *ModerationService) ShouldAutoApprove(r *model.AutoModerationResult) bool {
	return r.AutoDecision == model.DecisionAutoApprove &&
		r.DecisionConfidence >= s.policy.AutoConfidence &&
		!r.IsSpam && !r.IsToxic && r.IsAuthentic
}

// ShouldAutoReject reports whether the result clears every bar for an
// unattended rejection.
func (s *ModerationService) ShouldAutoReject(r *model.AutoModerationResult) bool {
	return r.AutoDecision == model.DecisionAutoReject &&
		r.DecisionConfidence >= s.policy.AutoConfidence &&
		(r.IsSpam || r.IsToxic || !r.IsAuthentic)
}

// NeedsManualReview reports whether a human must look at the review. The
// three predicates are not mutually exclusive; TerminalAction fixes the
// evaluation order.
func (s *ModerationService) NeedsManualReview(r *model.AutoModerationResult) bool {
	return r.AutoDecision == model.DecisionManualReview ||
		r.DecisionConfidence < s.policy.ManualConfidenceGate ||
		r.ContainsPersonalInfo || r.ContainsHateSpeech
}

// Terminal actions for one analyzer pass.
const (
	TerminalRejected = "rejected"
	TerminalApproved = "approved"
	TerminalEnqueued = "enqueued"
)

// TerminalAction evaluates reject → approve → manual review, in that
// order. Ambiguous inputs fall through to manual review (fail-safe).
// Approval additionally requires that no manual-review condition holds:
// an approve verdict carrying a personal-info or hate-speech flag, or one
// below the manual confidence gate, is enqueued rather than approved.
// Classify never emits such a result, but results can arrive from
// external analyzers.
func (s *ModerationService) TerminalAction(r *model.AutoModerationResult) string {
	switch {
	case s.ShouldAutoReject(r):
		return TerminalRejected
	case s.ShouldAutoApprove(r) && !s.NeedsManualReview(r):
		return TerminalApproved
	default:
		return TerminalEnqueued
	}
}

// PriorityScore converts a moderation result into the queue priority.
// Risk signals raise it; analyzer confidence lowers it (a confident
// manual-review case is less urgent than a baffling one).
func PriorityScore(r *model.AutoModerationResult) float64 {
	p := 50.0
	p += 25 * r.ToxicityScore
	p += 15 * r.SpamScore
	p += 10 * r.ProfanityScore
	if r.ContainsPersonalInfo {
		p += 10
	}
	if r.ContainsHateSpeech {
		p += 15
	}
	p -= 10 * r.DecisionConfidence

	return math.Max(model.MinPriorityScore, math.Min(model.MaxPriorityScore, math.Round(p*100)/100))
}

// Urgent reports whether the entry must jump the queue regardless of its
// numeric priority.
func Urgent(r *model.AutoModerationResult) bool {
	return r.ContainsHateSpeech || r.ContainsPersonalInfo
}

// Analyze runs the full pipeline for one review. An oracle timeout or
// failure routes the review to manual review with zero confidence — never
// to auto-approve — and still leaves an audit trail.
func (s *ModerationService) Analyze(ctx context.Context, reviewID string) (*model.AnalyzeResponse, error) {
	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	octx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	signals, oracleErr := s.oracle.Analyze(octx, review.Text, map[string]string{
		"hostelId": review.HostelID,
		"rating":   formatRating(review.Rating),
	})

	var result *model.AutoModerationResult
	if oracleErr != nil {
		log.Printf("moderation: oracle failure for %s, routing to manual review: %v", reviewID, oracleErr)
		result = failSafeResult(reviewID)
		s.ledger.LogAction(ctx, model.ModerationLogEntry{
			ReviewID:    reviewID,
			Action:      model.ActionOracleFailed,
			IsAutomated: true,
			Reason:      "signal oracle unavailable, failing safe to manual review",
		})
	} else {
		result = Classify(signals, s.policy)
		result.ReviewID = reviewID
	}

	if err := s.results.InsertResult(ctx, result); err != nil {
		return nil, err
	}

	resp := &model.AnalyzeResponse{Result: result}

	switch s.TerminalAction(result) {
	case TerminalRejected:
		if err := s.reviews.SetModerationStatus(ctx, reviewID, model.ReviewStatusRejected); err != nil {
			return nil, err
		}
		resp.TerminalAction = TerminalRejected
		s.logDecision(ctx, reviewID, model.ActionAutoRejected, model.ReviewStatusRejected, result.DecisionConfidence)

	case TerminalApproved:
		if err := s.reviews.SetModerationStatus(ctx, reviewID, model.ReviewStatusApproved); err != nil {
			return nil, err
		}
		resp.TerminalAction = TerminalApproved
		s.logDecision(ctx, reviewID, model.ActionAutoApproved, model.ReviewStatusApproved, result.DecisionConfidence)

	default:
		priority := PriorityScore(result)
		entry, err := s.queue.Enqueue(ctx, reviewID, review.HostelID, priority, Urgent(result),
			"auto-moderation could not reach a confident terminal decision")
		if err != nil {
			return nil, err
		}
		resp.TerminalAction = TerminalEnqueued
		resp.QueueEntryID = entry.ID
		resp.PriorityScore = entry.PriorityScore
	}

	if s.cache != nil {
		if err := s.cache.InvalidateReview(ctx, reviewID); err != nil {
			log.Printf("cache: invalidate review error: %v", err)
		}
	}
	return resp, nil
}

// failSafeResult is the stored outcome when the oracle cannot be reached.
func failSafeResult(reviewID string) *model.AutoModerationResult {
	return &model.AutoModerationResult{
		ReviewID:           reviewID,
		AutoDecision:       model.DecisionManualReview,
		DecisionConfidence: 0,
		IsAuthentic:        false,
	}
}

// LatestResult returns the most recent stored analyzer outcome.
func (s *ModerationService) LatestResult(ctx context.Context, reviewID string) (*model.AutoModerationResult, error) {
	return s.results.LatestResult(ctx, reviewID)
}

func (s *ModerationService) logDecision(ctx context.Context, reviewID, action, newStatus string, confidence float64) {
	prev := model.ReviewStatusPending
	s.ledger.LogAction(ctx, model.ModerationLogEntry{
		ReviewID:       reviewID,
		Action:         action,
		IsAutomated:    true,
		PreviousStatus: &prev,
		NewStatus:      &newStatus,
		Confidence:     &confidence,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
