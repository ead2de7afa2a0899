package model

import "time"

// EngagementRecord accumulates interaction counters for one review and
// carries the derived engagement and quality scores.
type EngagementRecord struct {
	ReviewID            string     `json:"reviewId"`
	ViewCount           int        `json:"viewCount"`
	UniqueViewers       int        `json:"uniqueViewers"`
	ShareCount          int        `json:"shareCount"`
	BookmarkCount       int        `json:"bookmarkCount"`
	InfluencedBookings  int        `json:"influencedBookings"`
	InfluencedInquiries int        `json:"influencedInquiries"`
	EngagementScore     float64    `json:"engagementScore"`
	QualityScore        float64    `json:"qualityScore"`
	DecayFactor         float64    `json:"engagementDecayFactor"`
	LastViewedAt        *time.Time `json:"lastViewedAt,omitempty"`
	// LastActivityAt moves only on tracked events. Score refreshes update
	// UpdatedAt but must not touch this, or staleness decay would reset on
	// every refresh pass.
	LastActivityAt time.Time `json:"lastActivityAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EngagementEvent names a trackable interaction.
type EngagementEvent string

const (
	EventView     EngagementEvent = "view"
	EventShare    EngagementEvent = "share"
	EventBookmark EngagementEvent = "bookmark"
	EventBooking  EngagementEvent = "booking"
	EventInquiry  EngagementEvent = "inquiry"
)

// ValidEngagementEvents are the allowed event path values.
var ValidEngagementEvents = map[EngagementEvent]bool{
	EventView:     true,
	EventShare:    true,
	EventBookmark: true,
	EventBooking:  true,
	EventInquiry:  true,
}
