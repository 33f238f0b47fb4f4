package scoring

import "time"

// Message roles as recorded in the session transcript.
const (
	RoleTrainee = "trainee"
	RolePatient = "patient"
	RoleSystem  = "system"
)

type Message struct {
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// SessionRecord is the view of a completed simulation session this engine
// needs: the transcript, timing, and case/user references. The session
// service owns the full record; stores return this projection.
type SessionRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CaseID          string    `json:"case_id"`
	CaseSpecialty   string    `json:"case_specialty,omitempty"`
	DurationMinutes float64   `json:"duration_minutes"`
	Messages        []Message `json:"messages"`
}

// TraineeTurns counts the trainee-authored messages in the transcript.
func (s *SessionRecord) TraineeTurns() int {
	n := 0
	for _, m := range s.Messages {
		if m.Role == RoleTrainee {
			n++
		}
	}
	return n
}
