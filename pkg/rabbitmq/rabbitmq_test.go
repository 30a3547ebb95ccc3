package rabbitmq_test

import (
	"encoding/json"
	"testing"
	"time"

	"kvauth/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublishing(t *testing.T) {
	event := rabbitmq.NewEvent("data.created", map[string]string{"key": "a"})
	_, err := uuid.Parse(event.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)

	msg, err := event.Publishing()
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, event.ID, msg.MessageId)
	assert.Equal(t, "data.created", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "data.created", decoded["type"])
	assert.Equal(t, map[string]interface{}{"key": "a"}, decoded["payload"])
}

func TestEventPublishing_UnencodablePayload(t *testing.T) {
	_, err := rabbitmq.NewEvent("bad", make(chan int)).Publishing()
	assert.Error(t, err)
}

func TestAuditLogHandler(t *testing.T) {
	msg, err := rabbitmq.NewEvent("user.registered", map[string]interface{}{"user_id": 1}).Publishing()
	require.NoError(t, err)

	assert.NoError(t, rabbitmq.AuditLogHandler(amqp.Delivery{Body: msg.Body}))
	assert.Error(t, rabbitmq.AuditLogHandler(amqp.Delivery{Body: []byte("not json")}))
}

func TestClosedClient(t *testing.T) {
	client := &rabbitmq.Client{}
	require.NoError(t, client.Close())
	// Close is idempotent
	require.NoError(t, client.Close())

	assert.ErrorIs(t, client.PublishEvent("data.created", map[string]string{"key": "a"}), rabbitmq.ErrClosed)
	assert.ErrorIs(t, client.ConsumeEvents(func(amqp.Delivery) error { return nil }), rabbitmq.ErrClosed)
}
