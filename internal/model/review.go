package model

import "time"

// Moderation status values written back to the review store.
const (
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
	ReviewStatusPending  = "pending"
)

// Review is the engine's read-only snapshot of a review entity. The
// review store owns the row; this core only flows a moderation status
// back after approvals and rejections.
type Review struct {
	ReviewID       string    `json:"reviewId"`
	HostelID       string    `json:"hostelId"`
	Rating         float64   `json:"rating"` // 1..5
	Text           string    `json:"text"`
	Pros           []string  `json:"pros"`
	Cons           []string  `json:"cons"`
	IsPublished    bool      `json:"isPublished"`
	IsVerifiedStay bool      `json:"isVerifiedStay"`
	CreatedAt      time.Time `json:"createdAt"`
}
