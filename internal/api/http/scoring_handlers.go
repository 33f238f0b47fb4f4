package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/virtualpatient/clinsim/internal/auth"
	"github.com/virtualpatient/clinsim/internal/cache"
	"github.com/virtualpatient/clinsim/internal/scoring"
)

// ResultGetter reads persisted scoring results; both store backends satisfy it.
type ResultGetter interface {
	GetResult(ctx context.Context, sessionID string) (*scoring.ScoringResult, error)
}

// POST /api/sessions/{sessionID}/score
func ScoreSessionHandler(svc *scoring.Service, rc *cache.ResultCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))
		if sessionID == "" {
			http.Error(w, "sessionID required", http.StatusBadRequest)
			return
		}
		evaluatorID := ""
		if c := auth.ClaimsFrom(r.Context()); c != nil {
			evaluatorID = c.Sub
		}

		res, err := svc.ScoreSession(r.Context(), sessionID, evaluatorID)
		if err != nil {
			switch {
			case errors.Is(err, scoring.ErrSessionNotFound):
				http.Error(w, "session "+sessionID+" not found", http.StatusNotFound)
			case errors.Is(err, scoring.ErrMetricsNotFound):
				http.Error(w, "no performance metrics recorded for session "+sessionID, http.StatusNotFound)
			default:
				http.Error(w, "score session: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}

		if rc != nil {
			if err := rc.Set(r.Context(), res); err != nil {
				log.Printf("api: cache result for session %s: %v", sessionID, err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// GET /api/sessions/{sessionID}/result
func GetResultHandler(store ResultGetter, rc *cache.ResultCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))
		if sessionID == "" {
			http.Error(w, "sessionID required", http.StatusBadRequest)
			return
		}

		if rc != nil {
			if res, err := rc.Get(r.Context(), sessionID); err == nil && res != nil {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(res)
				return
			} else if err != nil {
				log.Printf("api: result cache read for session %s: %v", sessionID, err)
			}
		}

		res, err := store.GetResult(r.Context(), sessionID)
		if err != nil {
			http.Error(w, "load result: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if res == nil {
			http.Error(w, "no scoring result for session "+sessionID, http.StatusNotFound)
			return
		}
		if rc != nil {
			if err := rc.Set(r.Context(), res); err != nil {
				log.Printf("api: cache result for session %s: %v", sessionID, err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// GET /api/rubrics/active
func GetActiveRubricHandler(svc *scoring.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(svc.Rubric())
	}
}
