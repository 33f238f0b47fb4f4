package scoring

// Criterion IDs known to the evaluator registry. Rubrics reference these;
// unknown IDs score at the default.
const (
	CriterionHistoryCompleteness  = "history-completeness"
	CriterionHistoryRelevance     = "history-relevance"
	CriterionExamThoroughness     = "exam-thoroughness"
	CriterionExamTechnique        = "exam-technique"
	CriterionDiagnosticAccuracy   = "diagnostic-accuracy"
	CriterionDiagnosticSelection  = "diagnostic-selection"
	CriterionCommunicationEmpathy = "communication-empathy"
	CriterionCommunicationClarity = "communication-clarity"
	CriterionTimeEfficiency       = "time-efficiency"
	CriterionPatientSafety        = "patient-safety"
)

// defaultCriterionScore is awarded when no evaluation function exists for a
// criterion: minimal credit when data is unavailable, rather than failing the
// whole pipeline.
const defaultCriterionScore = 45.0

// criterionFunc maps a metrics record to a raw 0-100 score. ok is false when
// the metrics record carries no data for the criterion's domain; the
// aggregator then excludes the criterion instead of scoring it zero.
type criterionFunc func(m *PerformanceMetrics) (score float64, ok bool)

// criterionEvaluators is the fixed registry of deterministic scoring
// functions. Every function has the same shape: a base contribution from the
// primary ratio, a bonus from a secondary quality indicator, a multiplicative
// penalty when a guard signals clearly deficient performance, clamped to
// [0,100].
var criterionEvaluators = map[string]criterionFunc{
	CriterionHistoryCompleteness:  evalHistoryCompleteness,
	CriterionHistoryRelevance:     evalHistoryRelevance,
	CriterionExamThoroughness:     evalExamThoroughness,
	CriterionExamTechnique:        evalExamTechnique,
	CriterionDiagnosticAccuracy:   evalDiagnosticAccuracy,
	CriterionDiagnosticSelection:  evalDiagnosticSelection,
	CriterionCommunicationEmpathy: evalCommunicationEmpathy,
	CriterionCommunicationClarity: evalCommunicationClarity,
	CriterionTimeEfficiency:       evalTimeEfficiency,
	CriterionPatientSafety:        evalPatientSafety,
}

// EvaluateCriterion resolves a criterion ID through the registry. Unknown IDs
// fall back to the default score.
func EvaluateCriterion(id string, m *PerformanceMetrics) (float64, bool) {
	fn, known := criterionEvaluators[id]
	if !known {
		return defaultCriterionScore, true
	}
	return fn(m)
}

func evalHistoryCompleteness(m *PerformanceMetrics) (float64, bool) {
	h := m.HistoryTaking
	if h == nil {
		return 0, false
	}
	score := clamp01(h.Completeness)*65 + ratioOf(h.KeyFindings, 5)*20
	if h.QuestionsAsked < 3 {
		score *= 0.6
	}
	return clampScore(score), true
}

func evalHistoryRelevance(m *PerformanceMetrics) (float64, bool) {
	h := m.HistoryTaking
	if h == nil {
		return 0, false
	}
	score := clamp01(h.RelevanceRatio)*70 + clamp01(h.Completeness)*15
	if h.RelevanceRatio < 0.3 {
		score *= 0.7
	}
	return clampScore(score), true
}

func evalExamThoroughness(m *PerformanceMetrics) (float64, bool) {
	e := m.PhysicalExam
	if e == nil {
		return 0, false
	}
	score := clamp01(e.Completeness)*65 + ratioOf(e.FindingsNoted, 6)*20
	if e.Completeness < 0.5 {
		score *= 0.7
	}
	return clampScore(score), true
}

func evalExamTechnique(m *PerformanceMetrics) (float64, bool) {
	e := m.PhysicalExam
	if e == nil {
		return 0, false
	}
	score := clamp01(e.TechniqueScore)*70 + clamp01(e.Completeness)*15
	if e.SystemsExamined == 0 {
		score *= 0.6
	}
	return clampScore(score), true
}

func evalDiagnosticAccuracy(m *PerformanceMetrics) (float64, bool) {
	d := m.Diagnostics
	if d == nil {
		return 0, false
	}
	score := clamp01(d.Accuracy)*70 + ratioOf(d.CriticalTestsHit, 3)*15
	if d.Accuracy < 0.3 {
		score *= 0.6
	}
	return clampScore(score), true
}

func evalDiagnosticSelection(m *PerformanceMetrics) (float64, bool) {
	d := m.Diagnostics
	if d == nil {
		return 0, false
	}
	score := clamp01(d.TestSelectivity)*65 + clamp01(d.Accuracy)*20
	if d.TestsOrdered == 0 {
		score *= 0.7
	}
	return clampScore(score), true
}

func evalCommunicationEmpathy(m *PerformanceMetrics) (float64, bool) {
	c := m.Communication
	if c == nil {
		return 0, false
	}
	score := clamp01(c.EmpathyScore)*70 + ratioOf(c.PatientQuestions, 4)*15
	if c.EmpathyScore < 0.3 {
		score *= 0.8
	}
	return clampScore(score), true
}

func evalCommunicationClarity(m *PerformanceMetrics) (float64, bool) {
	c := m.Communication
	if c == nil {
		return 0, false
	}
	score := clamp01(c.ClarityScore)*65 + (1-ratioOf(c.JargonCount, 5))*20
	if c.ClarityScore < 0.3 {
		score *= 0.8
	}
	return clampScore(score), true
}

func evalTimeEfficiency(m *PerformanceMetrics) (float64, bool) {
	t := m.TimeManagement
	if t == nil {
		return 0, false
	}
	score := clamp01(t.EfficiencyRatio)*70 + (1-clamp01(t.IdleRatio))*20
	if t.IdleRatio > 0.5 {
		score *= 0.8
	}
	return clampScore(score), true
}

func evalPatientSafety(m *PerformanceMetrics) (float64, bool) {
	s := m.Safety
	if s == nil {
		return 0, false
	}
	expected := s.ChecksExpected
	if expected < 1 {
		expected = 1
	}
	score := ratioOf(s.ChecksPerformed, expected)*65 + (1-clamp01(s.ViolationRatio))*25
	if s.CriticalActionsMissed > 0 {
		score *= 0.6
	}
	return clampScore(score), true
}

func ratioOf(n, max int) float64 {
	if max <= 0 {
		return 0
	}
	return clamp01(float64(n) / float64(max))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
