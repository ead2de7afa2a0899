package model

import "time"

// Moderation actions recorded in the append-only ledger.
const (
	ActionAutoApproved = "auto_approved"
	ActionAutoRejected = "auto_rejected"
	ActionEnqueued     = "enqueued"
	ActionAssigned     = "assigned"
	ActionEscalated    = "escalated"
	ActionCompleted    = "completed"
	ActionCancelled    = "cancelled"
	ActionOracleFailed = "oracle_failed"
)

// ModerationLogEntry is one row of the audit trail of record. Entries are
// never mutated or deleted.
type ModerationLogEntry struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"reviewId"`
	Action         string    `json:"action"`
	ActorID        *string   `json:"actorId,omitempty"`
	IsAutomated    bool      `json:"isAutomated"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	NewStatus      *string   `json:"newStatus,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ModerationStats is the read-only performance aggregation over the ledger.
type ModerationStats struct {
	TotalActions     int            `json:"totalActions"`
	AutomatedActions int            `json:"automatedActions"`
	AutomationRate   float64        `json:"automationRate"` // 2 decimal places, [0,1]
	ActionBreakdown  map[string]int `json:"actionBreakdown"`
	ActorBreakdown   map[string]int `json:"actorBreakdown"`
}
