package trust

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTrustRecompute = "trust:recompute"

const enqueueTimeout = 2 * time.Second

type RecomputePayload struct {
	CaregiverID uuid.UUID `json:"caregiver_id"`
}

// NewRecomputeTask builds a task that is never retried.
func NewRecomputeTask(caregiverID uuid.UUID) (*asynq.Task, error) {
	b, err := json.Marshal(RecomputePayload{CaregiverID: caregiverID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTrustRecompute, b, asynq.MaxRetry(0), asynq.Timeout(jobTimeout)), nil
}

// QueueScheduler hands recomputes to Redis through asynq so they survive a
// restart of this process.
type QueueScheduler struct {
	client *asynq.Client
	log    *zap.Logger
}

func NewQueueScheduler(opt asynq.RedisClientOpt, log *zap.Logger) *QueueScheduler {
	return &QueueScheduler{
		client: asynq.NewClient(opt),
		log:    log.With(zap.String("component", "trust.queue")),
	}
}

func (s *QueueScheduler) Schedule(caregiverID uuid.UUID) {
	task, err := NewRecomputeTask(caregiverID)
	if err != nil {
		s.log.Error("Failed to build trust task", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		s.log.Warn("Failed to enqueue trust recompute", zap.Error(err), zap.String("caregiver_id", caregiverID.String()))
	}
}

func (s *QueueScheduler) Close() error {
	return s.client.Close()
}

// HandleRecomputeTask processes trust:recompute tasks. Failures are logged
// and reported as success so asynq neither retries nor archives them.
func HandleRecomputeTask(recomputer *Recomputer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RecomputePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decode trust payload: %v: %w", err, asynq.SkipRetry)
		}
		recomputer.run(ctx, payload.CaregiverID, jobTimeout)
		return nil
	}
}

// NewWorker builds the asynq server that consumes trust tasks.
func NewWorker(opt asynq.RedisClientOpt, recomputer *Recomputer, concurrency int, log *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	if concurrency <= 0 {
		concurrency = 1
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: log.With(zap.String("component", "trust.worker")).Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeTrustRecompute, HandleRecomputeTask(recomputer))
	return srv, mux
}
