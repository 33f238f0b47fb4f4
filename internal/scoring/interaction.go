package scoring

import "strings"

// InteractionLevel classifies how thoroughly a trainee engaged with a
// simulation. It is derived from session data on every scoring run, never
// persisted as state.
type InteractionLevel string

const (
	InteractionMinimal   InteractionLevel = "minimal"
	InteractionBasic     InteractionLevel = "basic"
	InteractionAdequate  InteractionLevel = "adequate"
	InteractionThorough  InteractionLevel = "thorough"
	InteractionExtensive InteractionLevel = "extensive"
)

// clinicalKeywords is the fixed vocabulary used to estimate the clinical
// relevance of trainee questions.
var clinicalKeywords = []string{
	"pain", "symptom", "symptoms", "onset", "duration", "severity",
	"history", "examination", "exam", "diagnosis", "differential",
	"fever", "cough", "breathing", "chest", "abdomen", "headache",
	"nausea", "vomiting", "dizziness", "swelling", "rash",
	"medication", "medications", "allergy", "allergies", "dose",
	"blood", "pressure", "pulse", "temperature", "oxygen",
	"test", "tests", "lab", "labs", "x-ray", "scan", "ecg",
	"family", "smoking", "alcohol", "travel", "surgery",
}

// bonus terms: mentioning the phase of the encounter by name signals a
// structured approach.
var structureTerms = []string{"history", "examination", "diagnosis"}

const structureBonus = 0.2

// keywordWeight converts keyword hits in one message into the per-message
// density contribution, capped at 1.
const keywordWeight = 0.2

// ClassifyInteraction derives the engagement tier from the transcript and the
// total session duration in minutes. Pure and deterministic: identical input
// always yields the identical level.
func ClassifyInteraction(messages []Message, durationMinutes float64) InteractionLevel {
	questionsAsked := 0
	qualitySum := 0.0
	for _, m := range messages {
		if m.Role != RoleTrainee {
			continue
		}
		questionsAsked++
		qualitySum += messageQuality(m.Content)
	}

	questionQuality := 0.0
	if questionsAsked > 0 {
		questionQuality = clamp01(qualitySum / float64(questionsAsked))
	}

	denom := durationMinutes
	if denom < 1 {
		denom = 1
	}
	messageFrequency := float64(len(messages)) / denom

	switch {
	case questionsAsked >= 15 && questionQuality > 0.7 && messageFrequency > 2:
		return InteractionExtensive
	case questionsAsked >= 10 && questionQuality > 0.6 && messageFrequency > 1.5:
		return InteractionThorough
	case questionsAsked >= 5 && questionQuality > 0.5 && messageFrequency > 1:
		return InteractionAdequate
	case questionsAsked >= 2 && durationMinutes > 5:
		return InteractionBasic
	default:
		return InteractionMinimal
	}
}

// messageQuality scores one trainee message: up to 1 point from keyword
// density plus a flat bonus when the message names an encounter phase.
func messageQuality(content string) float64 {
	low := strings.ToLower(content)
	hits := 0
	for _, kw := range clinicalKeywords {
		hits += strings.Count(low, kw)
	}
	q := float64(hits) * keywordWeight
	if q > 1 {
		q = 1
	}
	for _, t := range structureTerms {
		if strings.Contains(low, t) {
			q += structureBonus
			break
		}
	}
	return q
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
