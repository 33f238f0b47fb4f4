package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// CompetencyRecorder is implemented by whatever bookkeeping backend the
// deployment uses. The scoring service never talks to it directly.
type CompetencyRecorder interface {
	RecordCompetencyUpdate(ctx context.Context, p CompetencyUpdatePayload) error
}

// Worker consumes competency-update tasks.
type Worker struct {
	recorder CompetencyRecorder
}

func NewWorker(recorder CompetencyRecorder) *Worker {
	return &Worker{recorder: recorder}
}

func (w *Worker) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompetencyUpdate, w.handleCompetencyUpdate)
	return mux
}

func (w *Worker) handleCompetencyUpdate(ctx context.Context, t *asynq.Task) error {
	var p CompetencyUpdatePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode competency update payload: %w", err)
	}
	log.Printf("worker: competency update for user %s, session %s, score %d (%s)",
		p.UserID, p.SessionID, p.FinalScore, p.PerformanceLevel)
	if w.recorder == nil {
		return nil
	}
	return w.recorder.RecordCompetencyUpdate(ctx, p)
}

// Run blocks serving the queue until the server stops.
func Run(redisAddr string, recorder CompetencyRecorder) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 5},
	)
	return srv.Run(NewWorker(recorder).mux())
}
