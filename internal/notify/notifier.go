package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

// Notifier hands competency updates to the task queue. The queue carries its
// own retry policy, decoupled from the scoring contract.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(redisAddr string) *Notifier {
	return &Notifier{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

func (n *Notifier) NotifyCompetencyUpdate(ctx context.Context, userID string, res *scoring.ScoringResult) error {
	task, err := NewCompetencyUpdateTask(userID, res)
	if err != nil {
		return err
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue competency update: %w", err)
	}
	log.Printf("notify: enqueued competency update %s for user %s (session %s)", info.ID, userID, res.SessionID)
	return nil
}

func (n *Notifier) Close() error { return n.client.Close() }

// LogNotifier is the fallback when no task queue is configured: the update is
// logged and dropped, honoring the best-effort contract.
type LogNotifier struct{}

func (LogNotifier) NotifyCompetencyUpdate(_ context.Context, userID string, res *scoring.ScoringResult) error {
	log.Printf("notify: no task queue configured, competency update for user %s (session %s, score %d) dropped",
		userID, res.SessionID, res.FinalScore)
	return nil
}
