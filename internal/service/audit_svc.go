package service

import (
	"context"
	"log"
	"math"

	"github.com/Kiran3100/Hostel-Main-sub000/internal/model"
	"github.com/Kiran3100/Hostel-Main-sub000/internal/repository"
)

// AuditService is the write facade over the append-only moderation ledger
// plus the read-only performance aggregation.
type AuditService struct {
	repo *repository.AuditRepo
}

func NewAuditService(repo *repository.AuditRepo) *AuditService {
	return &AuditService{repo: repo}
}

// LogAction appends one ledger entry. Audit writes must never abort the
// surrounding operation, so storage errors are logged and swallowed here;
// the trail is reconstructed from the surviving entries.
func (s *AuditService) LogAction(ctx context.Context, entry model.ModerationLogEntry) {
	if err := s.repo.Append(ctx, &entry); err != nil {
		log.Printf("audit: append failed for review %s action %s: %v", entry.ReviewID, entry.Action, err)
	}
}

// History returns a review's full moderation trail, oldest first.
func (s *AuditService) History(ctx context.Context, reviewID string) ([]model.ModerationLogEntry, error) {
	return s.repo.History(ctx, reviewID)
}

// Stats aggregates the ledger into staff/automation performance numbers.
func (s *AuditService) Stats(ctx context.Context) (*model.ModerationStats, error) {
	actions, actors, automated, total, err := s.repo.ActionCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ModerationStats{
		TotalActions:     total,
		AutomatedActions: automated,
		AutomationRate:   AutomationRate(automated, total),
		ActionBreakdown:  actions,
		ActorBreakdown:   actors,
	}, nil
}

// AutomationRate is the automated share of all actions, 2 decimal places.
func AutomationRate(automated, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(automated)/float64(total)*100) / 100
}
