package queue

import (
	"errors"
	"testing"

	"bookstore-catalog/internal/config"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPayloadRoundTrip(t *testing.T) {
	type payload struct {
		Books int `json:"books"`
	}

	task, err := NewTask("catalog:test", payload{Books: 3}, asynq.Queue(QueueLow))
	require.NoError(t, err)
	assert.Equal(t, "catalog:test", task.Type())

	var got payload
	require.NoError(t, UnmarshalPayload(task, &got))
	assert.Equal(t, 3, got.Books)
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	var dest struct{}
	err := UnmarshalPayload(asynq.NewTask("catalog:test", []byte("{")), &dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt(config.RedisConfig{Host: "redis:6379", Password: "pw", DB: 2})
	assert.Equal(t, asynq.RedisClientOpt{Addr: "redis:6379", Password: "pw", DB: 2}, opt)
}
