package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mtogo/auth/internal/models"
)

// Publisher appends audit events to a Redis stream consumed by the worker.
type Publisher struct {
	client redis.Cmdable
	stream string
	now    func() time.Time
}

func NewPublisher(client redis.Cmdable, stream string) *Publisher {
	return &Publisher{client: client, stream: stream, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, event models.AuditEvent) error {
	if event.At.IsZero() {
		event.At = p.now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":    string(event.Type),
			"payload": string(payload),
		},
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// Decode rebuilds an event from a stream entry written by Publish.
func Decode(values map[string]any) (models.AuditEvent, error) {
	var event models.AuditEvent
	raw, ok := values["payload"].(string)
	if !ok {
		typ, _ := values["type"].(string)
		if typ == "" {
			return event, fmt.Errorf("audit entry has neither payload nor type")
		}
		event.Type = models.AuditEventType(typ)
		return event, nil
	}
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return event, fmt.Errorf("decode audit payload: %w", err)
	}
	return event, nil
}
