package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traineeMsg(content string) Message { return Message{Role: RoleTrainee, Content: content} }
func patientMsg(content string) Message { return Message{Role: RolePatient, Content: content} }

func TestClassifyInteractionMinimal(t *testing.T) {
	// No trainee turns at all, short session.
	msgs := []Message{patientMsg("Hello doctor."), Message{Role: RoleSystem, Content: "Session started."}}
	assert.Equal(t, InteractionMinimal, ClassifyInteraction(msgs, 2))

	// Two low-quality turns but too short a session for "basic".
	msgs = []Message{traineeMsg("hi"), traineeMsg("ok"), patientMsg("...")}
	assert.Equal(t, InteractionMinimal, ClassifyInteraction(msgs, 5))
}

func TestClassifyInteractionBasic(t *testing.T) {
	msgs := []Message{traineeMsg("hello"), traineeMsg("how are you"), patientMsg("fine")}
	assert.Equal(t, InteractionBasic, ClassifyInteraction(msgs, 6))
}

func TestClassifyInteractionAdequate(t *testing.T) {
	// 6 trainee turns with 3 keyword hits each (quality 0.6), 10 total turns
	// over 8 minutes (frequency 1.25).
	var msgs []Message
	for i := 0; i < 6; i++ {
		msgs = append(msgs, traineeMsg("tell me about the pain onset and its severity"))
	}
	for i := 0; i < 4; i++ {
		msgs = append(msgs, patientMsg("it started yesterday"))
	}
	assert.Equal(t, InteractionAdequate, ClassifyInteraction(msgs, 8))
}

func TestClassifyInteractionThorough(t *testing.T) {
	// 12 trainee turns with 4 hits each (quality 0.8), 18 turns over 10
	// minutes (frequency 1.8).
	var msgs []Message
	for i := 0; i < 12; i++ {
		msgs = append(msgs, traineeMsg("describe the pain onset, its duration and severity"))
	}
	for i := 0; i < 6; i++ {
		msgs = append(msgs, patientMsg("it is quite bad"))
	}
	assert.Equal(t, InteractionThorough, ClassifyInteraction(msgs, 10))
}

func TestClassifyInteractionExtensive(t *testing.T) {
	// 16 keyword-dense trainee turns with patient replies in an 8 minute
	// session: frequency 4 > 2, quality well above 0.7.
	var msgs []Message
	for i := 0; i < 16; i++ {
		msgs = append(msgs, traineeMsg("any chest pain, and what about its onset, duration and severity?"))
		msgs = append(msgs, patientMsg("the pain comes and goes"))
	}
	assert.Equal(t, InteractionExtensive, ClassifyInteraction(msgs, 8))
}

func TestClassifyInteractionDeterministic(t *testing.T) {
	var msgs []Message
	for i := 0; i < 7; i++ {
		msgs = append(msgs, traineeMsg("any fever or cough or headache recently?"))
		msgs = append(msgs, patientMsg("a mild fever"))
	}
	first := ClassifyInteraction(msgs, 9)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ClassifyInteraction(msgs, 9))
	}
}

func TestClassifyInteractionZeroDuration(t *testing.T) {
	// Duration below one minute must not blow up the frequency divisor.
	msgs := []Message{traineeMsg("pain onset duration"), patientMsg("yes")}
	assert.NotPanics(t, func() { ClassifyInteraction(msgs, 0) })
	assert.Equal(t, InteractionMinimal, ClassifyInteraction(msgs, 0))
}

func TestMessageQualityBonusAndClamp(t *testing.T) {
	// Naming an encounter phase earns the flat bonus on top of density.
	plain := messageQuality("any pain or fever today?")
	structured := messageQuality("any pain or fever today? let me take your history")
	assert.Greater(t, structured, plain)

	// Keyword-stuffed message still contributes at most 1 + bonus before the
	// cross-message average is clamped.
	dense := messageQuality("pain pain pain fever cough chest onset duration severity history")
	assert.LessOrEqual(t, dense, 1.2)
}
