package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex-backend/internal/config"
	"github.com/acadex/acadex-backend/internal/model"
	"github.com/acadex/acadex-backend/internal/repository"
	"github.com/acadex/acadex-backend/internal/websocket"
)

const ExpirySweepInterval = 30 * time.Second

// ExpiryWorker sweeps attempts left open past their exam window and closes
// them, running the same auto-grading path as a regular submission. The
// submitted_at timestamp is backdated to the window end, not the sweep time.
type ExpiryWorker struct {
	attemptRepo *repository.AttemptRepository
	rdb         *redis.Client
	log         zerolog.Logger
	now         func() time.Time
}

// NewExpiryWorker creates a new ExpiryWorker.
func NewExpiryWorker(attemptRepo *repository.AttemptRepository, rdb *redis.Client, log zerolog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		attemptRepo: attemptRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "expiry_worker").Logger(),
		now:         time.Now,
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	ticker := time.NewTicker(ExpirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	expired, err := w.attemptRepo.ListExpired(ctx, w.now())
	if err != nil {
		w.log.Error().Err(err).Msg("List expired attempts failed")
		return
	}

	closed := 0
	for _, ea := range expired {
		// Submit races with the student pressing submit at the buzzer; the
		// first-writer-wins guard makes losing the race harmless.
		ok, err := w.attemptRepo.Submit(ctx, ea.AttemptID, ea.WindowEnd)
		if err != nil {
			w.log.Error().Err(err).
				Str("attempt_id", ea.AttemptID.String()).
				Msg("Close expired attempt failed")
			continue
		}
		if !ok {
			continue
		}
		closed++
		w.notify(ctx, ea)
	}

	if closed > 0 {
		w.log.Info().Int("count", closed).Msg("Closed expired attempts")
	}
}

func (w *ExpiryWorker) notify(ctx context.Context, ea model.ExpiredAttempt) {
	ev := websocket.MonitorEvent{
		Type:      websocket.EventAttemptSubmitted,
		ExamID:    ea.ExamID,
		AttemptID: ea.AttemptID,
		StudentID: ea.StudentID,
		At:        ea.WindowEnd,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := w.rdb.Publish(ctx, config.CacheKey.ExamMonitorChannel(ea.ExamID), payload).Err(); err != nil {
		w.log.Warn().Err(err).Str("exam_id", ea.ExamID.String()).Msg("Monitor publish failed")
	}
}
