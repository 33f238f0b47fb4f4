package scoring

// PerformanceMetrics is the upstream-computed record of quantitative
// indicators per clinical competency domain. It is produced once per session
// by the metrics service and is read-only here. A nil domain block means the
// upstream produced no data for that domain; criterion evaluators treat that
// as missing data, not as zero performance.
type PerformanceMetrics struct {
	SessionID      string                 `json:"session_id" bson:"session_id"`
	HistoryTaking  *HistoryTakingMetrics  `json:"history_taking,omitempty" bson:"history_taking,omitempty"`
	PhysicalExam   *PhysicalExamMetrics   `json:"physical_exam,omitempty" bson:"physical_exam,omitempty"`
	Diagnostics    *DiagnosticMetrics     `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
	Communication  *CommunicationMetrics  `json:"communication,omitempty" bson:"communication,omitempty"`
	TimeManagement *TimeManagementMetrics `json:"time_management,omitempty" bson:"time_management,omitempty"`
	Safety         *SafetyMetrics         `json:"safety,omitempty" bson:"safety,omitempty"`
}

type HistoryTakingMetrics struct {
	Completeness   float64 `json:"completeness" bson:"completeness"`       // 0..1, fraction of expected topics covered
	RelevanceRatio float64 `json:"relevance_ratio" bson:"relevance_ratio"` // 0..1, on-topic questions / total
	QuestionsAsked int     `json:"questions_asked" bson:"questions_asked"`
	KeyFindings    int     `json:"key_findings" bson:"key_findings"` // critical history items elicited
}

type PhysicalExamMetrics struct {
	Completeness    float64 `json:"completeness" bson:"completeness"` // 0..1, systems examined / expected
	SystemsExamined int     `json:"systems_examined" bson:"systems_examined"`
	FindingsNoted   int     `json:"findings_noted" bson:"findings_noted"`
	TechniqueScore  float64 `json:"technique_score" bson:"technique_score"` // 0..1, correct ordering and maneuvers
}

type DiagnosticMetrics struct {
	Accuracy         float64 `json:"accuracy" bson:"accuracy"`                 // 0..1, differential vs. ground truth
	TestSelectivity  float64 `json:"test_selectivity" bson:"test_selectivity"` // 0..1, appropriate tests / ordered
	TestsOrdered     int     `json:"tests_ordered" bson:"tests_ordered"`
	CriticalTestsHit int     `json:"critical_tests_hit" bson:"critical_tests_hit"`
}

type CommunicationMetrics struct {
	EmpathyScore     float64 `json:"empathy_score" bson:"empathy_score"` // 0..1
	ClarityScore     float64 `json:"clarity_score" bson:"clarity_score"` // 0..1
	JargonCount      int     `json:"jargon_count" bson:"jargon_count"`
	PatientQuestions int     `json:"patient_questions" bson:"patient_questions"` // patient questions answered
}

type TimeManagementMetrics struct {
	EfficiencyRatio float64 `json:"efficiency_ratio" bson:"efficiency_ratio"` // 0..1, productive turns / total
	TotalMinutes    float64 `json:"total_minutes" bson:"total_minutes"`
	IdleRatio       float64 `json:"idle_ratio" bson:"idle_ratio"` // 0..1, fraction of session idle
}

type SafetyMetrics struct {
	ChecksPerformed       int     `json:"checks_performed" bson:"checks_performed"` // allergy, interaction, red-flag checks
	ChecksExpected        int     `json:"checks_expected" bson:"checks_expected"`
	CriticalActionsMissed int     `json:"critical_actions_missed" bson:"critical_actions_missed"`
	ViolationRatio        float64 `json:"violation_ratio" bson:"violation_ratio"` // 0..1, unsafe actions / actions
}
