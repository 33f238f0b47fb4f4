package scoring

// PerformanceLevel is the qualitative label assigned from the final score.
type PerformanceLevel string

const (
	LevelNovice           PerformanceLevel = "novice"
	LevelAdvancedBeginner PerformanceLevel = "advanced_beginner"
	LevelCompetent        PerformanceLevel = "competent"
	LevelProficient       PerformanceLevel = "proficient"
	LevelExpert           PerformanceLevel = "expert"
)

type levelThresholds struct {
	expert, proficient, competent, advancedBeginner int
}

// performanceThresholds raise the bar as engagement rises: a highly engaged
// session has to clear higher cutoffs for the same label, while a sparse
// session is graded against looser ones since its score is already damped.
var performanceThresholds = map[InteractionLevel]levelThresholds{
	InteractionMinimal:   {85, 75, 60, 45},
	InteractionBasic:     {88, 78, 65, 50},
	InteractionAdequate:  {90, 80, 70, 55},
	InteractionThorough:  {92, 82, 72, 60},
	InteractionExtensive: {95, 85, 75, 65},
}

// ClassifyPerformance maps the final score to a performance level using the
// thresholds for the session's interaction level. First match from highest.
func ClassifyPerformance(finalScore int, level InteractionLevel) PerformanceLevel {
	t := performanceThresholds[level]
	switch {
	case finalScore >= t.expert:
		return LevelExpert
	case finalScore >= t.proficient:
		return LevelProficient
	case finalScore >= t.competent:
		return LevelCompetent
	case finalScore >= t.advancedBeginner:
		return LevelAdvancedBeginner
	default:
		return LevelNovice
	}
}
