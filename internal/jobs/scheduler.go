package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"mtogo/auth/internal/models"
)

type Publisher interface {
	Publish(ctx context.Context, event models.AuditEvent) error
}

// Scheduler enqueues periodic work for the worker on the audit stream.
type Scheduler struct {
	cron          *cron.Cron
	queue         Publisher
	flushSchedule string
	log           zerolog.Logger
}

func NewScheduler(queue Publisher, flushSchedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:          c,
		queue:         queue,
		flushSchedule: flushSchedule,
		log:           log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.flushSchedule, s.enqueueFlush); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the schedule. The returned context is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) enqueueFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.queue.Publish(ctx, models.AuditEvent{Type: models.AuditArchiveFlush}); err != nil {
		s.log.Error().Err(err).Msg("enqueue archive flush failed")
	}
}
