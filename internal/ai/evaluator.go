// Package ai is the HTTP client for the external AI session evaluator.
// The evaluator is optional: when unconfigured or failing, scoring proceeds
// rule-based only. Degradation policy lives in the scoring orchestrator, not
// here; this client just reports errors.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

type Config struct {
	BaseURL   string
	APIKey    string
	Evaluator string // evaluator model identifier
	Timeout   time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// IsAvailable reports whether the evaluator is configured at all. Transient
// upstream failures are discovered by Evaluate, not here.
func (c *Client) IsAvailable() bool {
	return c != nil && c.cfg.BaseURL != "" && c.cfg.APIKey != ""
}

type evaluateRequest struct {
	SessionID string `json:"session_id"`
	Evaluator string `json:"evaluator"`
}

type evaluateResponse struct {
	ConfidenceScore   float64  `json:"confidence_score"`
	EvaluationQuality *float64 `json:"evaluation_quality,omitempty"`
}

// Evaluate asks the external evaluator to judge a session. The caller bounds
// the call with a context deadline; the HTTP client timeout is a backstop.
func (c *Client) Evaluate(ctx context.Context, sessionID string) (*scoring.AIEvaluationSummary, error) {
	body, err := json.Marshal(evaluateRequest{SessionID: sessionID, Evaluator: c.cfg.Evaluator})
	if err != nil {
		return nil, err
	}
	url := c.cfg.BaseURL + "/v1/evaluations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("evaluator returned %d: %s", resp.StatusCode, snippet)
	}

	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode evaluator response: %w", err)
	}
	return &scoring.AIEvaluationSummary{
		ConfidenceScore:   out.ConfidenceScore,
		EvaluationQuality: out.EvaluationQuality,
	}, nil
}
