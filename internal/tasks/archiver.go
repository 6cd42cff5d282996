package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mtogo/auth/internal/audit"
	"mtogo/auth/internal/ids"
	"mtogo/auth/internal/models"
)

const ndjsonContentType = "application/x-ndjson"

// ObjectWriter is satisfied by *storage.ObjectStore.
type ObjectWriter interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// Archiver buffers audit events from the stream and writes them to object
// storage as NDJSON, one object per flush.
type Archiver struct {
	mu        sync.Mutex
	buffer    []models.AuditEvent
	batchSize int
	sink      ObjectWriter
	logger    zerolog.Logger
	now       func() time.Time
}

func NewArchiver(sink ObjectWriter, batchSize int, logger zerolog.Logger) *Archiver {
	return &Archiver{
		batchSize: batchSize,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle never rejects undecodable entries so they do not stay pending
// forever. Only a failed archive.flush is reported, so the task is retried.
func (a *Archiver) Handle(ctx context.Context, msg redis.XMessage) error {
	event, err := audit.Decode(msg.Values)
	if err != nil {
		a.logger.Warn().Err(err).Str("message_id", msg.ID).Msg("dropping undecodable audit entry")
		return nil
	}

	if event.Type == models.AuditArchiveFlush {
		return a.Flush(ctx)
	}

	a.mu.Lock()
	a.buffer = append(a.buffer, event)
	full := len(a.buffer) >= a.batchSize
	a.mu.Unlock()

	if full {
		if err := a.Flush(ctx); err != nil {
			a.logger.Error().Err(err).Msg("batch flush failed, keeping buffer")
		}
	}
	return nil
}

// Flush writes buffered events. On failure the buffer is kept for the next
// attempt.
func (a *Archiver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.buffer) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, event := range a.buffer {
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("encode audit event: %w", err)
		}
	}

	key := fmt.Sprintf("audit/%s/%s.ndjson", a.now().UTC().Format("2006/01/02"), ids.New())
	if err := a.sink.PutObject(ctx, key, body.Bytes(), ndjsonContentType); err != nil {
		return err
	}

	a.logger.Info().Str("key", key).Int("events", len(a.buffer)).Msg("audit batch archived")
	a.buffer = a.buffer[:0]
	return nil
}

func (a *Archiver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buffer)
}
