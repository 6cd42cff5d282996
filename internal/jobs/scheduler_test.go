package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []models.AuditEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, event models.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func TestEnqueueFlushPublishesTask(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec, "0 0 * * * *", zerolog.Nop())

	s.enqueueFlush()

	require.Len(t, rec.events, 1)
	assert.Equal(t, models.AuditArchiveFlush, rec.events[0].Type)
}

func TestEnqueueFlushSurvivesPublishError(t *testing.T) {
	rec := &recorder{err: errors.New("redis down")}
	s := NewScheduler(rec, "0 0 * * * *", zerolog.Nop())

	assert.NotPanics(t, s.enqueueFlush)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&recorder{}, "not a schedule", zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&recorder{}, "*/30 * * * * *", zerolog.Nop())
	require.NoError(t, s.Start())
	<-s.Stop().Done()
}

func TestStartWithoutQueueIsNoop(t *testing.T) {
	s := NewScheduler(nil, "not a schedule", zerolog.Nop())
	assert.NoError(t, s.Start())
}
