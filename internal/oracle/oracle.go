// Package oracle is the boundary to the external content-signal classifier.
// The engine treats it as an opaque scoring service: it sends review text
// plus metadata and gets back numeric signals. A timeout or failure here is
// recovered by the caller (routed to manual review), never escalated into
// an auto-approve.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Signals is the classifier's response payload.
type Signals struct {
	SpamScore            float64 `json:"spamScore"`      // [0,1]
	ToxicityScore        float64 `json:"toxicityScore"`  // [0,1]
	SentimentScore       float64 `json:"sentimentScore"` // [-1,1]
	ProfanityScore       float64 `json:"profanityScore"` // [0,1]
	ContainsPersonalInfo bool    `json:"containsPersonalInfo"`
	ContainsHateSpeech   bool    `json:"containsHateSpeech"`
	DetectedLanguage     string  `json:"detectedLanguage"`
	LanguageConfidence   float64 `json:"languageConfidence"`
}

// Client scores review content. Implementations must honor ctx cancellation.
type Client interface {
	Analyze(ctx context.Context, text string, metadata map[string]string) (*Signals, error)
}

type analyzeRequest struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HTTPClient calls a remote signal-scoring service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client with a hard per-call timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Analyze POSTs the review text to the oracle's /analyze endpoint.
func (c *HTTPClient) Analyze(ctx context.Context, text string, metadata map[string]string) (*Signals, error) {
	body, err := json.Marshal(analyzeRequest{Text: text, Metadata: metadata})
	if err != nil {
		return nil, fmt.Errorf("oracle: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("oracle: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle: call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle: unexpected status %d", resp.StatusCode)
	}

	var signals Signals
	if err := json.NewDecoder(resp.Body).Decode(&signals); err != nil {
		return nil, fmt.Errorf("oracle: decode response: %w", err)
	}
	return &signals, nil
}

// Static is a fixed-response client for tests and local development.
type Static struct {
	Signals Signals
	Err     error
}

func (s *Static) Analyze(ctx context.Context, text string, metadata map[string]string) (*Signals, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.Signals
	return &out, nil
}
