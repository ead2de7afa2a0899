package model

import "time"

// QueueStatus is the moderation queue state machine status.
type QueueStatus string

const (
	QueuePending   QueueStatus = "pending"
	QueueInReview  QueueStatus = "in_review"
	QueueEscalated QueueStatus = "escalated"
	QueueCompleted QueueStatus = "completed"
	QueueCancelled QueueStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s QueueStatus) IsTerminal() bool {
	return s == QueueCompleted || s == QueueCancelled
}

// Priority score bounds and the escalation bump.
const (
	MinPriorityScore       = 0.0
	MaxPriorityScore       = 100.0
	EscalationPriorityBump = 20.0
)

// ModerationQueueEntry is one review awaiting a terminal moderation
// decision. Exclusively owned by the queue; version guards all mutations
// (optimistic concurrency).
type ModerationQueueEntry struct {
	ID                         string      `json:"id"`
	ReviewID                   string      `json:"reviewId"`
	HostelID                   string      `json:"hostelId"`
	Status                     QueueStatus `json:"status"`
	PriorityScore              float64     `json:"priorityScore"` // [0,100]
	RequiresImmediateAttention bool        `json:"requiresImmediateAttention"`
	AssignedTo                 *string     `json:"assignedTo,omitempty"`
	Reason                     string      `json:"reason,omitempty"`
	Version                    int         `json:"version"`
	CreatedAt                  time.Time   `json:"createdAt"`
	AssignedAt                 *time.Time  `json:"assignedAt,omitempty"`
	ProcessingStartedAt        *time.Time  `json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt      *time.Time  `json:"processingCompletedAt,omitempty"`
}

// QueueFilter narrows queue listings. Zero values mean "no filter".
type QueueFilter struct {
	Status      QueueStatus
	AssignedTo  string
	MinPriority float64
	Limit       int
}

// QueueStats summarizes backlog depth for the metrics surface.
type QueueStats struct {
	PendingCount     int      `json:"pendingCount"`
	InReviewCount    int      `json:"inReviewCount"`
	EscalatedCount   int      `json:"escalatedCount"`
	UrgentCount      int      `json:"urgentCount"`
	OldestPendingAge *float64 `json:"oldestPendingAgeSeconds,omitempty"`
}

// AssignRequest is the body for queue assignment.
type AssignRequest struct {
	ModeratorID string `json:"moderatorId"`
}

// EscalateRequest is the body for queue escalation.
type EscalateRequest struct {
	Reason string `json:"reason"`
}

// CancelRequest is the body for queue cancellation.
type CancelRequest struct {
	Reason string `json:"reason"`
}
