package notify

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

// TypeCompetencyUpdate is the task type for downstream competency-assessment
// bookkeeping. Scoring success never depends on these tasks.
const TypeCompetencyUpdate = "competency_update"

type CompetencyUpdatePayload struct {
	UserID           string                   `json:"user_id"`
	SessionID        string                   `json:"session_id"`
	CaseID           string                   `json:"case_id,omitempty"`
	FinalScore       int                      `json:"final_score"`
	PerformanceLevel scoring.PerformanceLevel `json:"performance_level"`
	InteractionLevel scoring.InteractionLevel `json:"interaction_level"`
	EvaluatedAt      time.Time                `json:"evaluated_at"`
}

// NewCompetencyUpdateTask builds the asynq task for one scoring result.
func NewCompetencyUpdateTask(userID string, res *scoring.ScoringResult) (*asynq.Task, error) {
	payload, err := json.Marshal(CompetencyUpdatePayload{
		UserID:           userID,
		SessionID:        res.SessionID,
		FinalScore:       res.FinalScore,
		PerformanceLevel: res.PerformanceLevel,
		InteractionLevel: res.InteractionLevel,
		EvaluatedAt:      res.EvaluatedAt,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCompetencyUpdate, payload, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)), nil
}
