package repository

import (
	"context"
	"testing"
	"time"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/database"
	"taskflow_realtime/pkg/logger"
	testtool "taskflow_realtime/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisEventBus_RoundTrip(t *testing.T) {
	testtool.SkipUnlessIntegration(t)
	logger.SetNewNop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	client, err := database.NewRedisClient(ctx, database.RedisConnection{Addr: host + ":" + port})
	require.NoError(t, err)
	defer client.Close()

	bus := NewRedisEventBus(client)

	type received struct {
		channel string
		env     domain.Envelope
	}
	got := make(chan received, 4)
	require.NoError(t, bus.Subscribe(ctx, func(channel string, env domain.Envelope) {
		got <- received{channel, env}
	}))

	require.NoError(t, bus.Publish(ctx, domain.RoomChannel("g1"), domain.NewResponse(domain.GroupPin, map[string]interface{}{
		"groupId":         "g1",
		"pinnedMessageId": nil,
	})))
	require.NoError(t, bus.Publish(ctx, "unrelated", domain.NewResponse(domain.GroupPin, nil)))
	require.NoError(t, bus.Publish(ctx, domain.UserChannel("u1"), domain.NewResponse(domain.NotificationNew, map[string]string{"id": "n1"})))

	for _, want := range []string{"chat:room:g1", "chat:user:u1"} {
		select {
		case r := <-got:
			assert.Equal(t, want, r.channel)
		case <-time.After(5 * time.Second):
			t.Fatalf("no message on %s", want)
		}
	}
}
