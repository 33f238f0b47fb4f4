package scoring

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Collaborator interfaces. Stores return (nil, nil) when the record does not
// exist; the orchestrator turns that into the matching not-found error.

type SessionStore interface {
	GetSessionWithContext(ctx context.Context, sessionID string) (*SessionRecord, error)
}

type MetricsStore interface {
	GetMetrics(ctx context.Context, sessionID string) (*PerformanceMetrics, error)
}

// AIEvaluator is optional. Evaluate may fail or time out; the engine then
// degrades to rule-based-only scoring.
type AIEvaluator interface {
	IsAvailable() bool
	Evaluate(ctx context.Context, sessionID string) (*AIEvaluationSummary, error)
}

// ResultSink persists results and triggers the downstream competency update.
// NotifyCompetencyUpdate is best-effort: failures are logged, never surfaced
// to the scoring caller.
type ResultSink interface {
	SaveResult(ctx context.Context, sessionID string, res *ScoringResult) error
	NotifyCompetencyUpdate(ctx context.Context, userID string, res *ScoringResult) error
}

type Clock func() time.Time

// Service sequences one scoring run: interaction classification, criterion
// evaluation, aggregation, AI blending, performance classification. Stateless
// apart from the immutable rubric snapshot; safe for concurrent use.
type Service struct {
	sessions SessionStore
	metrics  MetricsStore
	sink     ResultSink
	rubric   Rubric

	ai        AIEvaluator
	aiTimeout time.Duration
	now       Clock
	newID     func() string
}

type Option func(*Service)

func WithAIEvaluator(ai AIEvaluator) Option   { return func(s *Service) { s.ai = ai } }
func WithAITimeout(d time.Duration) Option    { return func(s *Service) { s.aiTimeout = d } }
func WithClock(now Clock) Option              { return func(s *Service) { s.now = now } }
func WithIDGenerator(fn func() string) Option { return func(s *Service) { s.newID = fn } }

// NewService validates the rubric once at construction. An invalid rubric is
// refused here; scoring never runs against one.
func NewService(sessions SessionStore, metrics MetricsStore, sink ResultSink, rubric Rubric, opts ...Option) (*Service, error) {
	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		sessions:  sessions,
		metrics:   metrics,
		sink:      sink,
		rubric:    rubric,
		aiTimeout: 10 * time.Second,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

type aiOutcome struct {
	summary *AIEvaluationSummary
	err     error
}

// ScoreSession scores one completed session and returns the persisted result.
// Session fetch, metrics fetch, and the AI call are independent and issued
// concurrently; the AI call only needs session identity.
func (s *Service) ScoreSession(ctx context.Context, sessionID, evaluatorID string) (*ScoringResult, error) {
	var aiCh chan aiOutcome
	if s.ai != nil && s.ai.IsAvailable() {
		aiCh = make(chan aiOutcome, 1)
		aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		go func() {
			defer cancel()
			sum, err := s.ai.Evaluate(aiCtx, sessionID)
			aiCh <- aiOutcome{summary: sum, err: err}
		}()
	}

	var (
		sess       *SessionRecord
		sessErr    error
		m          *PerformanceMetrics
		metricsErr error
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sess, sessErr = s.sessions.GetSessionWithContext(ctx, sessionID)
	}()
	go func() {
		defer wg.Done()
		m, metricsErr = s.metrics.GetMetrics(ctx, sessionID)
	}()
	wg.Wait()

	if sessErr != nil {
		return nil, fmt.Errorf("fetch session %s: %w", sessionID, sessErr)
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	if metricsErr != nil {
		return nil, fmt.Errorf("fetch metrics for session %s: %w", sessionID, metricsErr)
	}
	if m == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrMetricsNotFound)
	}

	level := ClassifyInteraction(sess.Messages, sess.DurationMinutes)
	entries := BuildCriterionEntries(s.rubric, m, level)
	ruleScore := AggregateScore(s.rubric, entries, level)

	finalScore := ruleScore
	var aiSummary *AIEvaluationSummary
	if aiCh != nil {
		out := <-aiCh
		switch {
		case out.err != nil:
			log.Printf("scoring: ai evaluator unavailable for session %s, using rule-based score: %v", sessionID, out.err)
		case out.summary != nil:
			adjusted := AdjustAIScore(*out.summary, level)
			finalScore = BlendScores(ruleScore, adjusted, level)
			aiSummary = out.summary
		}
	}

	res := &ScoringResult{
		ID:               s.newID(),
		SessionID:        sess.ID,
		UserID:           sess.UserID,
		RubricID:         s.rubric.ID,
		RubricVersion:    s.rubric.Version,
		FinalScore:       finalScore,
		RuleBasedScore:   ruleScore,
		PerformanceLevel: ClassifyPerformance(finalScore, level),
		InteractionLevel: level,
		CriteriaScores:   entries,
		AIEvaluation:     aiSummary,
		EvaluatedAt:      s.now(),
		EvaluatorID:      evaluatorID,
	}

	if err := s.sink.SaveResult(ctx, sessionID, res); err != nil {
		return nil, fmt.Errorf("save result for session %s: %w", sessionID, err)
	}

	// Best-effort; must not block the return of the result.
	go s.notifyCompetencyUpdate(sess.UserID, res)

	return res, nil
}

func (s *Service) notifyCompetencyUpdate(userID string, res *ScoringResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.sink.NotifyCompetencyUpdate(ctx, userID, res); err != nil {
		log.Printf("scoring: competency update for user %s (session %s) failed: %v", userID, res.SessionID, err)
	}
}

// Rubric returns the immutable rubric snapshot the service scores against.
func (s *Service) Rubric() Rubric { return s.rubric }
