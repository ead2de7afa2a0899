package model

import "time"

// VoteKind is the direction of a helpfulness vote.
type VoteKind string

const (
	VoteHelpful    VoteKind = "helpful"
	VoteNotHelpful VoteKind = "not_helpful"
)

// ValidVoteKinds are the allowed vote kind values.
var ValidVoteKinds = map[VoteKind]bool{
	VoteHelpful:    true,
	VoteNotHelpful: true,
}

// Vote weight bounds for credibility weighting.
const (
	MinVoteWeight = 0.0
	MaxVoteWeight = 10.0
)

// Vote is a single helpfulness vote. At most one exists per
// (review_id, voter_id); re-voting updates the row in place and records
// the previous kind for the audit data.
type Vote struct {
	ID              int64     `json:"id"`
	ReviewID        string    `json:"reviewId"`
	VoterID         string    `json:"voterId"`
	Kind            VoteKind  `json:"kind"`
	Weight          float64   `json:"weight"`
	IsVerifiedVoter bool      `json:"isVerifiedVoter"`
	IsChanged       bool      `json:"isChanged"`
	PreviousKind    *VoteKind `json:"previousKind,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	IPHash          string    `json:"-"`
}

// VoteTally holds raw and credibility-weighted counts for a review.
type VoteTally struct {
	Helpful            int     `json:"helpful"`
	NotHelpful         int     `json:"notHelpful"`
	Total              int     `json:"total"`
	WeightedHelpful    float64 `json:"weightedHelpful"`
	WeightedNotHelpful float64 `json:"weightedNotHelpful"`
}

// VoteRequest is the API request body for casting a vote.
// A nil Weight means "derive it from voter credibility on the server";
// an explicit 0 is a legal weight and suppresses the derivation.
type VoteRequest struct {
	ReviewID string   `json:"reviewId"`
	VoterID  string   `json:"voterId"`
	Kind     string   `json:"kind"`
	Weight   *float64 `json:"weight,omitempty"`
	Verified bool     `json:"verified,omitempty"`
}

// VoteDeleteRequest is the API request body for retracting a vote.
type VoteDeleteRequest struct {
	ReviewID string `json:"reviewId"`
	VoterID  string `json:"voterId"`
}

// VoteResponse is returned after a vote mutation with the fresh score.
type VoteResponse struct {
	Success     bool      `json:"success"`
	IsChanged   bool      `json:"isChanged"`
	Tally       VoteTally `json:"tally"`
	WilsonScore float64   `json:"wilsonScore"`
}
