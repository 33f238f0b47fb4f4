package scoring

import "math"

// AIEvaluationSummary is the opaque output of the external AI evaluator.
// EvaluationQuality is the evaluator's self-assessment of its own signal,
// when it reports one.
type AIEvaluationSummary struct {
	ConfidenceScore   float64  `json:"confidence_score"` // 0..100
	EvaluationQuality *float64 `json:"evaluation_quality,omitempty"`
}

// blendWeights maps engagement to (aiWeight, manualWeight). Trust shifts
// toward the rule-based score as engagement increases: a rich transcript
// gives the deterministic rubric better evidence than the AI judgment.
var blendWeights = map[InteractionLevel][2]float64{
	InteractionMinimal:   {0.5, 0.5},
	InteractionBasic:     {0.4, 0.6},
	InteractionAdequate:  {0.3, 0.7},
	InteractionThorough:  {0.25, 0.75},
	InteractionExtensive: {0.2, 0.8},
}

// aiAdjustments shifts the raw AI confidence by engagement tier before
// blending.
var aiAdjustments = map[InteractionLevel]float64{
	InteractionMinimal:   -15,
	InteractionBasic:     -10,
	InteractionExtensive: 5,
}

// AI scores are clamped so the AI judgment can never dominate at the
// extremes under low signal or unverified quality.
const (
	aiScoreMin = 30
	aiScoreMax = 90
)

// BlendWeights returns the (aiWeight, manualWeight) pair for a level.
func BlendWeights(level InteractionLevel) (aiWeight, manualWeight float64) {
	w := blendWeights[level]
	return w[0], w[1]
}

// AdjustAIScore calibrates the raw AI confidence score for the engagement
// tier and the evaluator's reported quality, clamped to [30,90].
func AdjustAIScore(summary AIEvaluationSummary, level InteractionLevel) float64 {
	score := summary.ConfidenceScore + aiAdjustments[level]
	if summary.EvaluationQuality != nil {
		score += (*summary.EvaluationQuality - 0.5) * 10
	}
	if score < aiScoreMin {
		return aiScoreMin
	}
	if score > aiScoreMax {
		return aiScoreMax
	}
	return score
}

// BlendScores combines the rule-based score with the adjusted AI score using
// the engagement-dependent weights. Result is clamped to [0,100].
func BlendScores(manualScore int, adjustedAIScore float64, level InteractionLevel) int {
	aiW, manualW := BlendWeights(level)
	blended := int(math.Round(float64(manualScore)*manualW + adjustedAIScore*aiW))
	if blended < 0 {
		return 0
	}
	if blended > 100 {
		return 100
	}
	return blended
}
