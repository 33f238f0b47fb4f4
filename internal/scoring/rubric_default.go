package scoring

// DefaultRubric is the global clinical rubric used when no discipline-specific
// rubric is configured. Stores seed from it; offline deployments run on it
// directly. Keyed by the criterion IDs registered in criteria.go.
func DefaultRubric() Rubric {
	return Rubric{
		ID:      "clinical-default",
		Name:    "General Clinical Performance",
		Version: 1,
		CompetencyAreas: []CompetencyArea{
			{
				Name:   "History Taking",
				Weight: 0.25,
				Criteria: []Criterion{
					{ID: CriterionHistoryCompleteness, Description: "Coverage of expected history topics", MaxScore: 100, Weight: 0.6, EvaluationGuideline: "history_completeness_v1"},
					{ID: CriterionHistoryRelevance, Description: "Focus and relevance of history questions", MaxScore: 100, Weight: 0.4, EvaluationGuideline: "history_relevance_v1"},
				},
			},
			{
				Name:   "Physical Examination",
				Weight: 0.20,
				Criteria: []Criterion{
					{ID: CriterionExamThoroughness, Description: "Completeness of the physical examination", MaxScore: 100, Weight: 0.6, EvaluationGuideline: "exam_thoroughness_v1"},
					{ID: CriterionExamTechnique, Description: "Examination ordering and technique", MaxScore: 100, Weight: 0.4, EvaluationGuideline: "exam_technique_v1"},
				},
			},
			{
				Name:   "Diagnostic Reasoning",
				Weight: 0.20,
				Criteria: []Criterion{
					{ID: CriterionDiagnosticAccuracy, Description: "Accuracy of the differential diagnosis", MaxScore: 100, Weight: 0.6, EvaluationGuideline: "diagnostic_accuracy_v1"},
					{ID: CriterionDiagnosticSelection, Description: "Appropriateness of ordered investigations", MaxScore: 100, Weight: 0.4, EvaluationGuideline: "diagnostic_selection_v1"},
				},
			},
			{
				Name:   "Communication",
				Weight: 0.15,
				Criteria: []Criterion{
					{ID: CriterionCommunicationEmpathy, Description: "Empathy and rapport with the patient", MaxScore: 100, Weight: 0.5, EvaluationGuideline: "communication_empathy_v1"},
					{ID: CriterionCommunicationClarity, Description: "Clarity and jargon-free explanations", MaxScore: 100, Weight: 0.5, EvaluationGuideline: "communication_clarity_v1"},
				},
			},
			{
				Name:   "Time Management",
				Weight: 0.10,
				Criteria: []Criterion{
					{ID: CriterionTimeEfficiency, Description: "Efficient use of session time", MaxScore: 100, Weight: 1.0, EvaluationGuideline: "time_efficiency_v1"},
				},
			},
			{
				Name:   "Patient Safety",
				Weight: 0.10,
				Criteria: []Criterion{
					{ID: CriterionPatientSafety, Description: "Safety checks and avoidance of unsafe actions", MaxScore: 100, Weight: 1.0, EvaluationGuideline: "patient_safety_v1"},
				},
			},
		},
	}
}
