// Package sqlstore backs the scoring collaborators with the relational
// store (sqlite offline, postgres online).
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

type Store struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// GetSessionWithContext returns the session projection the scoring engine
// needs, or (nil, nil) when the session does not exist.
func (s *Store) GetSessionWithContext(ctx context.Context, sessionID string) (*scoring.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,case_id,case_specialty,duration_min,messages_json FROM sessions WHERE id=$1`, sessionID)
	var rec scoring.SessionRecord
	var msgJSON string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.CaseID, &rec.CaseSpecialty, &rec.DurationMinutes, &msgJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(msgJSON), &rec.Messages); err != nil {
		return nil, fmt.Errorf("decode messages for session %s: %w", sessionID, err)
	}
	return &rec, nil
}

func (s *Store) GetMetrics(ctx context.Context, sessionID string) (*scoring.PerformanceMetrics, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT metrics_json FROM performance_metrics WHERE session_id=$1`, sessionID)
	var mJSON string
	if err := row.Scan(&mJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var m scoring.PerformanceMetrics
	if err := json.Unmarshal([]byte(mJSON), &m); err != nil {
		return nil, fmt.Errorf("decode metrics for session %s: %w", sessionID, err)
	}
	return &m, nil
}

// SaveResult upserts the one result row per session: re-scoring replaces the
// previous result atomically from the reader's point of view.
func (s *Store) SaveResult(ctx context.Context, sessionID string, res *scoring.ScoringResult) error {
	buf, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scoring_results (session_id,user_id,result_json,final_score,evaluated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (session_id) DO UPDATE SET
		   user_id=EXCLUDED.user_id, result_json=EXCLUDED.result_json,
		   final_score=EXCLUDED.final_score, evaluated_at=EXCLUDED.evaluated_at`,
		sessionID, res.UserID, string(buf), res.FinalScore, res.EvaluatedAt.Unix())
	return err
}

// GetResult returns the persisted result for a session, or (nil, nil).
func (s *Store) GetResult(ctx context.Context, sessionID string) (*scoring.ScoringResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT result_json FROM scoring_results WHERE session_id=$1`, sessionID)
	var rJSON string
	if err := row.Scan(&rJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var res scoring.ScoringResult
	if err := json.Unmarshal([]byte(rJSON), &res); err != nil {
		return nil, fmt.Errorf("decode result for session %s: %w", sessionID, err)
	}
	return &res, nil
}

// ActiveRubric loads the active rubric version. Validation happens in
// scoring.NewService; the store only decodes.
func (s *Store) ActiveRubric(ctx context.Context) (scoring.Rubric, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,version,name,areas_json FROM rubrics WHERE active=1 ORDER BY version DESC LIMIT 1`)
	var r scoring.Rubric
	var areasJSON string
	if err := row.Scan(&r.ID, &r.Version, &r.Name, &areasJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scoring.Rubric{}, fmt.Errorf("no active rubric configured")
		}
		return scoring.Rubric{}, err
	}
	if err := json.Unmarshal([]byte(areasJSON), &r.CompetencyAreas); err != nil {
		return scoring.Rubric{}, fmt.Errorf("decode rubric %s: %w", r.ID, err)
	}
	return r, nil
}

// SeedDefaultRubric installs the built-in rubric when no active rubric
// exists. Used by offline deployments on first start.
func (s *Store) SeedDefaultRubric(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rubrics WHERE active=1`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	r := scoring.DefaultRubric()
	areas, err := json.Marshal(r.CompetencyAreas)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rubrics (id,version,name,areas_json,active,created_at) VALUES ($1,$2,$3,$4,1,$5)
		 ON CONFLICT (id,version) DO NOTHING`,
		r.ID, r.Version, r.Name, string(areas), time.Now().Unix())
	return err
}
