package model

import "time"

// HelpfulnessScore is the derived ranking record for one review. It is
// recomputed from the vote tally on every vote mutation, never patched
// incrementally.
type HelpfulnessScore struct {
	ReviewID              string    `json:"reviewId"`
	HostelID              string    `json:"hostelId"`
	HelpfulCount          int       `json:"helpfulCount"`
	NotHelpfulCount       int       `json:"notHelpfulCount"`
	TotalVotes            int       `json:"totalVotes"`
	WeightedHelpful       float64   `json:"weightedHelpful"`
	WeightedNotHelpful    float64   `json:"weightedNotHelpful"`
	HelpfulnessPercentage float64   `json:"helpfulnessPercentage"` // 2 decimal places
	WilsonScore           float64   `json:"wilsonScore"`           // 6 decimal places
	GlobalRank            *int      `json:"globalRank,omitempty"`
	HostelRank            *int      `json:"hostelRank,omitempty"`
	LastCalculatedAt      time.Time `json:"lastCalculatedAt"`
}

// RankScope selects which ranking column UpdateRankings rewrites.
type RankScope string

const (
	RankScopeGlobal RankScope = "global"
	RankScopeHostel RankScope = "hostel"
)
