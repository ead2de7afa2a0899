package service

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/apperr"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// queueTransitions is the moderation state machine. completed and
// cancelled are terminal; escalated can only return to in_review or close.
var queueTransitions = map[model.QueueStatus][]model.QueueStatus{
	model.QueuePending:   {model.QueueInReview, model.QueueEscalated, model.QueueCancelled},
	model.QueueInReview:  {model.QueueEscalated, model.QueueCompleted, model.QueueCancelled},
	model.QueueEscalated: {model.QueueInReview, model.QueueCompleted},
}

// ValidTransition reports whether from → to is a legal queue transition.
func ValidTransition(from, to model.QueueStatus) bool {
	for _, next := range queueTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// QueueService drives the moderation queue. All mutations run under the
// repository's version guard; losing a guarded update surfaces as a
// Conflict or InvalidTransition, never as a silent success.
type QueueService struct {
	repo   *repository.QueueRepo
	ledger *AuditService
}

func NewQueueService(repo *repository.QueueRepo, ledger *AuditService) *QueueService {
	return &QueueService{repo: repo, ledger: ledger}
}

// Enqueue adds a review to the queue. Idempotent: an existing entry for
// the review is returned unchanged.
func (s *QueueService) Enqueue(ctx context.Context, reviewID, hostelID string, priority float64, urgent bool, reason string) (*model.ModerationQueueEntry, error) {
	if priority < model.MinPriorityScore || priority > model.MaxPriorityScore {
		return nil, apperr.Validationf("priority %.2f out of range [0,100]", priority)
	}

	entry := &model.ModerationQueueEntry{
		ID:                         uuid.NewString(),
		ReviewID:                   reviewID,
		HostelID:                   hostelID,
		Status:                     model.QueuePending,
		PriorityScore:              priority,
		RequiresImmediateAttention: urgent,
		Reason:                     reason,
	}

	stored, created, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}
	if created {
		pending := string(model.QueuePending)
		s.ledger.LogAction(ctx, model.ModerationLogEntry{
			ReviewID:    reviewID,
			Action:      model.ActionEnqueued,
			IsAutomated: true,
			NewStatus:   &pending,
			Reason:      reason,
		})
	}
	return stored, nil
}

// Assign hands a pending or escalated entry to a moderator.
func (s *QueueService) Assign(ctx context.Context, entryID, moderatorID string) (*model.ModerationQueueEntry, error) {
	current, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(current.Status, model.QueueInReview) {
		return nil, apperr.InvalidTransitionf("cannot assign entry in status %s", current.Status)
	}

	updated, err := s.repo.Assign(ctx, entryID, moderatorID, current.Version)
	if err != nil {
		return nil, s.mapGuardFailure(ctx, entryID, model.QueueInReview, err)
	}

	s.logTransition(ctx, updated.ReviewID, model.ActionAssigned, &moderatorID, false,
		current.Status, updated.Status, "assigned to moderator")
	return updated, nil
}

// Escalate flags an entry for immediate attention and bumps its priority
// by 20, capped at 100.
func (s *QueueService) Escalate(ctx context.Context, entryID, reason string) (*model.ModerationQueueEntry, error) {
	current, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(current.Status, model.QueueEscalated) {
		return nil, apperr.InvalidTransitionf("cannot escalate entry in status %s", current.Status)
	}

	newPriority := math.Min(current.PriorityScore+model.EscalationPriorityBump, model.MaxPriorityScore)
	updated, err := s.repo.Escalate(ctx, entryID, reason, newPriority, current.Version)
	if err != nil {
		return nil, s.mapGuardFailure(ctx, entryID, model.QueueEscalated, err)
	}

	s.logTransition(ctx, updated.ReviewID, model.ActionEscalated, current.AssignedTo, false,
		current.Status, updated.Status, reason)
	return updated, nil
}

// Complete closes an entry after a terminal moderation decision.
func (s *QueueService) Complete(ctx context.Context, entryID string) (*model.ModerationQueueEntry, error) {
	current, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(current.Status, model.QueueCompleted) {
		return nil, apperr.InvalidTransitionf("cannot complete entry in status %s", current.Status)
	}

	updated, err := s.repo.Complete(ctx, entryID, current.Version)
	if err != nil {
		return nil, s.mapGuardFailure(ctx, entryID, model.QueueCompleted, err)
	}

	s.logTransition(ctx, updated.ReviewID, model.ActionCompleted, current.AssignedTo, false,
		current.Status, updated.Status, "moderation completed")
	return updated, nil
}

// Cancel closes an entry that no longer needs a decision (e.g. the review
// was withdrawn).
func (s *QueueService) Cancel(ctx context.Context, entryID, reason string) (*model.ModerationQueueEntry, error) {
	current, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(current.Status, model.QueueCancelled) {
		return nil, apperr.InvalidTransitionf("cannot cancel entry in status %s", current.Status)
	}

	updated, err := s.repo.Cancel(ctx, entryID, reason, current.Version)
	if err != nil {
		return nil, s.mapGuardFailure(ctx, entryID, model.QueueCancelled, err)
	}

	s.logTransition(ctx, updated.ReviewID, model.ActionCancelled, current.AssignedTo, false,
		current.Status, updated.Status, reason)
	return updated, nil
}

// WorkingOrderLess is the moderator working order: entries flagged for
// immediate attention first, then higher priority, then oldest first.
// The repository's listing ORDER BY must agree with this comparator.
func WorkingOrderLess(a, b *model.ModerationQueueEntry) bool {
	if a.RequiresImmediateAttention != b.RequiresImmediateAttention {
		return a.RequiresImmediateAttention
	}
	if a.PriorityScore != b.PriorityScore {
		return a.PriorityScore > b.PriorityScore
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// List returns the queue in working order (urgent, priority, age).
func (s *QueueService) List(ctx context.Context, f model.QueueFilter) ([]model.ModerationQueueEntry, error) {
	if f.Status != "" {
		switch f.Status {
		case model.QueuePending, model.QueueInReview, model.QueueEscalated,
			model.QueueCompleted, model.QueueCancelled:
		default:
			return nil, apperr.Validationf("invalid queue status %q", f.Status)
		}
	}
	entries, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return WorkingOrderLess(&entries[i], &entries[j])
	})
	return entries, nil
}

// Stats summarizes backlog depth.
func (s *QueueService) Stats(ctx context.Context) (*model.QueueStats, error) {
	return s.repo.Stats(ctx)
}

// mapGuardFailure distinguishes why a version-guarded update matched
// nothing: the entry vanished, the state became terminal, or another
// moderator won the race.
func (s *QueueService) mapGuardFailure(ctx context.Context, entryID string, target model.QueueStatus, err error) error {
	if err != repository.ErrGuardFailed {
		return err
	}
	latest, getErr := s.repo.Get(ctx, entryID)
	if getErr != nil {
		return getErr
	}
	if !ValidTransition(latest.Status, target) {
		return apperr.InvalidTransitionf("entry moved to status %s", latest.Status)
	}
	return apperr.Conflictf("entry %s was modified concurrently, refresh and retry", entryID)
}

func (s *QueueService) logTransition(ctx context.Context, reviewID, action string, actorID *string,
	automated bool, from, to model.QueueStatus, reason string) {
	prev := string(from)
	next := string(to)
	s.ledger.LogAction(ctx, model.ModerationLogEntry{
		ReviewID:       reviewID,
		Action:         action,
		ActorID:        actorID,
		IsAutomated:    automated,
		PreviousStatus: &prev,
		NewStatus:      &next,
		Reason:         reason,
	})
}
