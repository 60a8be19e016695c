package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingPayload struct {
	Count int `json:"count"`
}

func TestEventBus_HandleDeliversTypedPayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := NewEventBus(logger)
	defer bus.Close()

	router, err := NewRouter(logger)
	require.NoError(t, err)

	got := make(chan int, 1)
	Handle(router, bus, logger, "test.ping", "ping.v1", func(_ context.Context, p *pingPayload) error {
		got <- p.Count
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	require.NoError(t, bus.PublishJSON(ctx, "ping.v1", pingPayload{Count: 3}))

	select {
	case n := <-got:
		assert.Equal(t, 3, n)
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not receive the message")
	}
	require.NoError(t, router.Close())
}

func TestEventBus_HandleDropsUndecodableMessage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := NewEventBus(logger)
	defer bus.Close()

	router, err := NewRouter(logger)
	require.NoError(t, err)

	got := make(chan int, 2)
	Handle(router, bus, logger, "test.ping", "ping.v1", func(_ context.Context, p *pingPayload) error {
		got <- p.Count
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	require.NoError(t, bus.Publish("ping.v1", message.NewMessage("bad", []byte("{"))))
	require.NoError(t, bus.PublishJSON(ctx, "ping.v1", pingPayload{Count: 5}))

	select {
	case n := <-got:
		assert.Equal(t, 5, n)
	case <-time.After(5 * time.Second):
		t.Fatal("handler stalled after an undecodable message")
	}
	assert.Empty(t, got)
	require.NoError(t, router.Close())
}

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage(context.Background(), pingPayload{Count: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.UUID)
	assert.JSONEq(t, `{"count":7}`, string(msg.Payload))

	_, err = NewJSONMessage(context.Background(), make(chan int))
	assert.Error(t, err)
}
