package audit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtogo/auth/internal/models"
)

func TestPublishAndDecode(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewPublisher(client, "auth:events")
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, models.AuditEvent{
		Type:        models.AuditLoginSucceeded,
		PrincipalID: "p1",
		Kind:        "customer",
	}))

	entries, err := client.XRange(ctx, "auth:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	event, err := Decode(entries[0].Values)
	require.NoError(t, err)
	assert.Equal(t, models.AuditLoginSucceeded, event.Type)
	assert.Equal(t, "p1", event.PrincipalID)
	assert.Equal(t, "customer", event.Kind)
	assert.True(t, event.At.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestDecodeTypeOnly(t *testing.T) {
	event, err := Decode(map[string]any{"type": "archive.flush"})
	require.NoError(t, err)
	assert.Equal(t, models.AuditArchiveFlush, event.Type)

	_, err = Decode(map[string]any{})
	assert.Error(t, err)
}
