package scoring

import "time"

// ScoringResult is the complete, persistable outcome of one scoring run.
// One-to-one with the session it scores; re-scoring supersedes the previous
// result wholesale rather than mutating it.
type ScoringResult struct {
	ID               string                `json:"id"`
	SessionID        string                `json:"session_id"`
	UserID           string                `json:"user_id"`
	RubricID         string                `json:"rubric_id"`
	RubricVersion    int                   `json:"rubric_version"`
	FinalScore       int                   `json:"final_score"`
	RuleBasedScore   int                   `json:"rule_based_score"`
	PerformanceLevel PerformanceLevel      `json:"performance_level"`
	InteractionLevel InteractionLevel      `json:"interaction_level"`
	CriteriaScores   []CriterionScoreEntry `json:"criteria_scores"`
	AIEvaluation     *AIEvaluationSummary  `json:"ai_evaluation,omitempty"`
	EvaluatedAt      time.Time             `json:"evaluated_at"`
	EvaluatorID      string                `json:"evaluator_id,omitempty"`
}
