package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	assert.False(t, NewClient(Config{}).IsAvailable())
	assert.False(t, NewClient(Config{BaseURL: "http://localhost"}).IsAvailable())
	assert.True(t, NewClient(Config{BaseURL: "http://localhost", APIKey: "k"}).IsAvailable())

	var nilClient *Client
	assert.False(t, nilClient.IsAvailable())
}

func TestEvaluate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/evaluations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req evaluateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req.SessionID)

		q := 0.9
		_ = json.NewEncoder(w).Encode(evaluateResponse{ConfidenceScore: 80, EvaluationQuality: &q})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Evaluator: "clinical-eval-1"})
	sum, err := c.Evaluate(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, sum.ConfidenceScore)
	require.NotNil(t, sum.EvaluationQuality)
	assert.Equal(t, 0.9, *sum.EvaluationQuality)
}

func TestEvaluateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := c.Evaluate(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestEvaluateHonorsContextDeadline(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Evaluate(ctx, "s1")
	require.Error(t, err)
}
