package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

type stubStore struct {
	sessions map[string]*scoring.SessionRecord
	metrics  map[string]*scoring.PerformanceMetrics
	results  map[string]*scoring.ScoringResult
}

func newStubStore() *stubStore {
	return &stubStore{
		sessions: map[string]*scoring.SessionRecord{},
		metrics:  map[string]*scoring.PerformanceMetrics{},
		results:  map[string]*scoring.ScoringResult{},
	}
}

func (s *stubStore) GetSessionWithContext(_ context.Context, id string) (*scoring.SessionRecord, error) {
	return s.sessions[id], nil
}
func (s *stubStore) GetMetrics(_ context.Context, id string) (*scoring.PerformanceMetrics, error) {
	return s.metrics[id], nil
}
func (s *stubStore) SaveResult(_ context.Context, id string, res *scoring.ScoringResult) error {
	s.results[id] = res
	return nil
}
func (s *stubStore) NotifyCompetencyUpdate(_ context.Context, _ string, _ *scoring.ScoringResult) error {
	return nil
}
func (s *stubStore) GetResult(_ context.Context, id string) (*scoring.ScoringResult, error) {
	return s.results[id], nil
}

func testRouter(t *testing.T, store *stubStore) *chi.Mux {
	t.Helper()
	svc, err := scoring.NewService(store, store, store, scoring.DefaultRubric())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/api/sessions/{sessionID}/score", ScoreSessionHandler(svc, nil))
	r.Get("/api/sessions/{sessionID}/result", GetResultHandler(store, nil))
	r.Get("/api/rubrics/active", GetActiveRubricHandler(svc))
	return r
}

func TestScoreSessionHandlerNotFoundMessages(t *testing.T) {
	store := newStubStore()
	store.sessions["has-session"] = &scoring.SessionRecord{ID: "has-session", UserID: "u1", DurationMinutes: 2}
	r := testRouter(t, store)

	// Missing session names the session.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/sessions/ghost/score", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "session ghost not found")

	// Missing metrics names the metrics, not the session.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/sessions/has-session/score", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no performance metrics recorded")
}

func TestScoreSessionHandlerReturnsResult(t *testing.T) {
	store := newStubStore()
	store.sessions["s1"] = &scoring.SessionRecord{ID: "s1", UserID: "u1", DurationMinutes: 2}
	store.metrics["s1"] = &scoring.PerformanceMetrics{SessionID: "s1"}
	r := testRouter(t, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/sessions/s1/score", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res scoring.ScoringResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, 20, res.FinalScore) // minimal engagement floors at 20
	assert.Equal(t, scoring.LevelNovice, res.PerformanceLevel)
	assert.NotNil(t, store.results["s1"], "result persisted")
}

func TestGetResultHandler(t *testing.T) {
	store := newStubStore()
	r := testRouter(t, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/sessions/s1/result", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store.results["s1"] = &scoring.ScoringResult{ID: "r1", SessionID: "s1", FinalScore: 75}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/sessions/s1/result", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res scoring.ScoringResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 75, res.FinalScore)
}

func TestGetActiveRubricHandler(t *testing.T) {
	r := testRouter(t, newStubStore())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rubrics/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rubric scoring.Rubric
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rubric))
	assert.Equal(t, "clinical-default", rubric.ID)
	assert.NoError(t, rubric.Validate())
}
