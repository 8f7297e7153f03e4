package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tawsila/internal/promo"
)

type Scheduler struct {
	cron      *cron.Cron
	queue     *redis.Client
	stream    string
	nightFlag *promo.NightFlag
	log       zerolog.Logger
}

func NewScheduler(queue *redis.Client, stream string, nightFlag *promo.NightFlag, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		queue:     queue,
		stream:    stream,
		nightFlag: nightFlag,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	// Nightly sweep of expired sessions, handled by the worker.
	if s.queue != nil {
		if _, err := s.cron.AddFunc("0 0 3 * * *", s.enqueueSessionCleanup); err != nil {
			return err
		}
	}

	// The night-bonus banner flips within a minute of the window edge.
	if s.nightFlag != nil {
		if _, err := s.cron.AddFunc("0 * * * * *", s.nightFlag.Refresh); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for running jobs, bounded by a timeout.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueSessionCleanup() {
	if err := s.enqueueTask(map[string]any{
		"type": "session_cleanup",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue session cleanup failed")
	}
}

func (s *Scheduler) enqueueTask(payload map[string]any) error {
	if s.queue == nil {
		return nil
	}
	_, err := s.queue.XAdd(context.Background(), &redis.XAddArgs{
		Stream: s.stream,
		Values: payload,
	}).Result()
	return err
}
