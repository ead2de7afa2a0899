package model

import "time"

// AutoDecision is the analyzer's classification outcome.
type AutoDecision string

const (
	DecisionAutoApprove  AutoDecision = "auto_approve"
	DecisionManualReview AutoDecision = "manual_review"
	DecisionAutoReject   AutoDecision = "auto_reject"
	DecisionAutoFlag     AutoDecision = "auto_flag"
)

// AutoModerationResult is the stored outcome of one analyzer pass over a
// review. Re-analysis writes a new record with a higher model version;
// existing records are never mutated.
type AutoModerationResult struct {
	ID           int64  `json:"id"`
	ReviewID     string `json:"reviewId"`
	ModelVersion int    `json:"modelVersion"`

	// Raw oracle signals.
	SpamScore            float64 `json:"spamScore"`      // [0,1]
	SentimentScore       float64 `json:"sentimentScore"` // [-1,1]
	ToxicityScore        float64 `json:"toxicityScore"`  // [0,1]
	ProfanityScore       float64 `json:"profanityScore"` // [0,1]
	ContainsPersonalInfo bool    `json:"containsPersonalInfo"`
	ContainsHateSpeech   bool    `json:"containsHateSpeech"`
	DetectedLanguage     string  `json:"detectedLanguage"`
	LanguageConfidence   float64 `json:"languageConfidence"`

	// Threshold-derived booleans.
	IsSpam       bool `json:"isSpam"`
	IsToxic      bool `json:"isToxic"`
	HasProfanity bool `json:"hasProfanity"`
	IsAuthentic  bool `json:"isAuthentic"`

	AutoDecision       AutoDecision `json:"autoDecision"`
	DecisionConfidence float64      `json:"decisionConfidence"` // [0,1]
	AnalyzedAt         time.Time    `json:"analyzedAt"`
}

// AnalyzeResponse is returned by the moderation analyze endpoint.
type AnalyzeResponse struct {
	Result         *AutoModerationResult `json:"result"`
	TerminalAction string                `json:"terminalAction"` // approved | rejected | enqueued
	QueueEntryID   string                `json:"queueEntryId,omitempty"`
	PriorityScore  float64               `json:"priorityScore,omitempty"`
}
