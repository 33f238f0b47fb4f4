package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{
		SessionID:      "sess-1",
		HistoryTaking:  &HistoryTakingMetrics{Completeness: 0.9, RelevanceRatio: 0.8, QuestionsAsked: 12, KeyFindings: 4},
		PhysicalExam:   &PhysicalExamMetrics{Completeness: 0.85, SystemsExamined: 5, FindingsNoted: 4, TechniqueScore: 0.8},
		Diagnostics:    &DiagnosticMetrics{Accuracy: 0.75, TestSelectivity: 0.8, TestsOrdered: 4, CriticalTestsHit: 2},
		Communication:  &CommunicationMetrics{EmpathyScore: 0.7, ClarityScore: 0.8, JargonCount: 1, PatientQuestions: 3},
		TimeManagement: &TimeManagementMetrics{EfficiencyRatio: 0.8, TotalMinutes: 14, IdleRatio: 0.1},
		Safety:         &SafetyMetrics{ChecksPerformed: 3, ChecksExpected: 4, CriticalActionsMissed: 0, ViolationRatio: 0},
	}
}

func TestEvaluateCriterionUnknownFallsBack(t *testing.T) {
	score, ok := EvaluateCriterion("no-such-criterion", fullMetrics())
	require.True(t, ok)
	assert.Equal(t, defaultCriterionScore, score)
}

func TestEvaluateCriterionMissingDomain(t *testing.T) {
	m := &PerformanceMetrics{SessionID: "sess-1"} // no domain data at all
	for id := range criterionEvaluators {
		_, ok := EvaluateCriterion(id, m)
		assert.False(t, ok, "criterion %s must report missing data", id)
	}
}

func TestEvaluateCriterionBounds(t *testing.T) {
	cases := []*PerformanceMetrics{
		fullMetrics(),
		{
			HistoryTaking:  &HistoryTakingMetrics{},
			PhysicalExam:   &PhysicalExamMetrics{},
			Diagnostics:    &DiagnosticMetrics{},
			Communication:  &CommunicationMetrics{},
			TimeManagement: &TimeManagementMetrics{},
			Safety:         &SafetyMetrics{},
		},
		{
			// Out-of-range upstream values must still clamp.
			HistoryTaking:  &HistoryTakingMetrics{Completeness: 1.7, RelevanceRatio: 2.0, QuestionsAsked: 50, KeyFindings: 40},
			PhysicalExam:   &PhysicalExamMetrics{Completeness: 1.5, SystemsExamined: 20, FindingsNoted: 30, TechniqueScore: 1.2},
			Diagnostics:    &DiagnosticMetrics{Accuracy: 1.4, TestSelectivity: 1.3, TestsOrdered: 9, CriticalTestsHit: 8},
			Communication:  &CommunicationMetrics{EmpathyScore: 1.1, ClarityScore: 1.6, JargonCount: 0, PatientQuestions: 10},
			TimeManagement: &TimeManagementMetrics{EfficiencyRatio: 1.9, IdleRatio: -0.4},
			Safety:         &SafetyMetrics{ChecksPerformed: 12, ChecksExpected: 4, ViolationRatio: -1},
		},
	}
	for _, m := range cases {
		for id := range criterionEvaluators {
			score, ok := EvaluateCriterion(id, m)
			require.True(t, ok)
			assert.GreaterOrEqual(t, score, 0.0, "criterion %s", id)
			assert.LessOrEqual(t, score, 100.0, "criterion %s", id)
		}
	}
}

func TestHistoryCompletenessPenaltyGuard(t *testing.T) {
	strong := &PerformanceMetrics{HistoryTaking: &HistoryTakingMetrics{Completeness: 1, KeyFindings: 5, QuestionsAsked: 10}}
	sparse := &PerformanceMetrics{HistoryTaking: &HistoryTakingMetrics{Completeness: 1, KeyFindings: 5, QuestionsAsked: 2}}

	full, ok := EvaluateCriterion(CriterionHistoryCompleteness, strong)
	require.True(t, ok)
	assert.InDelta(t, 85.0, full, 0.001) // 65 base + 20 bonus

	penalized, ok := EvaluateCriterion(CriterionHistoryCompleteness, sparse)
	require.True(t, ok)
	assert.InDelta(t, full*0.6, penalized, 0.001)
}

func TestDiagnosticAccuracyPenaltyGuard(t *testing.T) {
	m := &PerformanceMetrics{Diagnostics: &DiagnosticMetrics{Accuracy: 0.2, TestSelectivity: 0.5, TestsOrdered: 3, CriticalTestsHit: 3}}
	score, ok := EvaluateCriterion(CriterionDiagnosticAccuracy, m)
	require.True(t, ok)
	// (0.2*70 + 15 bonus) * 0.6 guard
	assert.InDelta(t, (0.2*70+15)*0.6, score, 0.001)
}

func TestPatientSafetyMissedCriticalAction(t *testing.T) {
	safe := &PerformanceMetrics{Safety: &SafetyMetrics{ChecksPerformed: 4, ChecksExpected: 4, ViolationRatio: 0}}
	missed := &PerformanceMetrics{Safety: &SafetyMetrics{ChecksPerformed: 4, ChecksExpected: 4, ViolationRatio: 0, CriticalActionsMissed: 1}}

	base, ok := EvaluateCriterion(CriterionPatientSafety, safe)
	require.True(t, ok)
	assert.InDelta(t, 90.0, base, 0.001) // 65 + 25

	penalized, ok := EvaluateCriterion(CriterionPatientSafety, missed)
	require.True(t, ok)
	assert.InDelta(t, base*0.6, penalized, 0.001)
}

func TestDefaultRubricCriteriaAllRegistered(t *testing.T) {
	for _, area := range DefaultRubric().CompetencyAreas {
		for _, c := range area.Criteria {
			_, registered := criterionEvaluators[c.ID]
			assert.True(t, registered, "criterion %s has no evaluator", c.ID)
		}
	}
}
