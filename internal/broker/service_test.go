package broker

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"courier/internal/config"
	"courier/internal/constants"
	"courier/internal/logger"
	pkgerrors "courier/pkg/errors"
)

func newTestService(mode string) *Service {
	cfg := config.BrokerConfig{
		Mode:                 mode,
		StatsIntervalSeconds: constants.DefaultStatsInterval,
	}
	return NewService(NewRegistry(), cfg, logger.NopLogger())
}

func TestServiceRegisterChannel(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()

	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	err := svc.RegisterChannel(ctx, "orders")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))
}

func TestServicePublishStrictRequiresChannel(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()

	_, err := svc.Publish(ctx, "missing", map[string]interface{}{"id": 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	// no channel must have been created as a side effect
	stats, err := svc.Stats(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestServicePublishLenientAutoCreates(t *testing.T) {
	svc := newTestService(constants.BrokerModeLenient)
	ctx := context.Background()

	id, err := svc.Publish(ctx, "orders", map[string]interface{}{"id": 1})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stats, err := svc.Stats(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{Ready: 1, Unacked: 0, Total: 1}, stats["orders"])
}

func TestServiceConsumeFIFO(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	var published []string
	for i := 0; i < 10; i++ {
		id, err := svc.Publish(ctx, "orders", map[string]interface{}{"seq": i})
		require.NoError(t, err)
		published = append(published, id)
	}

	for i := 0; i < 10; i++ {
		msg, err := svc.Consume(ctx, "orders")
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, published[i], msg.ID)
		assert.Equal(t, i, msg.Payload["seq"])
	}

	msg, err := svc.Consume(ctx, "orders")
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestServiceConsumeEmptyIsNotAnError(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	msg, err := svc.Consume(ctx, "orders")
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestServiceConsumeMissingChannel(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		wantError bool
	}{
		{
			name:      "strict mode reports not found",
			mode:      constants.BrokerModeStrict,
			wantError: true,
		},
		{
			name:      "lenient mode returns empty result",
			mode:      constants.BrokerModeLenient,
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.mode)
			msg, err := svc.Consume(context.Background(), "missing")
			assert.Nil(t, msg)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceAcknowledge(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	id, err := svc.Publish(ctx, "orders", map[string]interface{}{"id": 1})
	require.NoError(t, err)

	// not yet delivered
	acked, err := svc.Acknowledge(ctx, "orders", id)
	require.NoError(t, err)
	assert.False(t, acked)

	msg, err := svc.Consume(ctx, "orders")
	require.NoError(t, err)
	require.NotNil(t, msg)

	acked, err = svc.Acknowledge(ctx, "orders", msg.ID)
	require.NoError(t, err)
	assert.True(t, acked)

	// second acknowledge is a no-op
	acked, err = svc.Acknowledge(ctx, "orders", msg.ID)
	require.NoError(t, err)
	assert.False(t, acked)

	_, err = svc.Acknowledge(ctx, "missing", msg.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestServiceStatsCounts(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	const n, k = 7, 3
	for i := 0; i < n; i++ {
		_, err := svc.Publish(ctx, "orders", map[string]interface{}{"seq": i})
		require.NoError(t, err)
	}
	for i := 0; i < k; i++ {
		msg, err := svc.Consume(ctx, "orders")
		require.NoError(t, err)
		require.NotNil(t, msg)
	}

	stats, err := svc.Stats(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{Ready: n - k, Unacked: k, Total: n}, stats["orders"])
}

func TestServiceStatsAllChannels(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))
	require.NoError(t, svc.RegisterChannel(ctx, "payments"))

	_, err := svc.Publish(ctx, "orders", map[string]interface{}{"id": 1})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "")
	require.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, ChannelStats{Ready: 1, Unacked: 0, Total: 1}, stats["orders"])
	assert.Equal(t, ChannelStats{}, stats["payments"])
}

func TestServiceStatsMissingChannel(t *testing.T) {
	strict := newTestService(constants.BrokerModeStrict)
	_, err := strict.Stats(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	lenient := newTestService(constants.BrokerModeLenient)
	stats, err := lenient.Stats(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestServicePurge(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	for i := 0; i < 5; i++ {
		_, err := svc.Publish(ctx, "orders", map[string]interface{}{"seq": i})
		require.NoError(t, err)
	}
	msg, err := svc.Consume(ctx, "orders")
	require.NoError(t, err)
	require.NotNil(t, msg)
	deliveredID := msg.ID

	require.NoError(t, svc.Purge(ctx, "orders"))

	stats, err := svc.Stats(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{}, stats["orders"])

	msg, err = svc.Consume(ctx, "orders")
	require.NoError(t, err)
	assert.Nil(t, msg)

	// purged unacked messages are gone for good
	acked, err := svc.Acknowledge(ctx, "orders", deliveredID)
	require.NoError(t, err)
	assert.False(t, acked)

	err = svc.Purge(ctx, "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestServiceEndToEnd(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()

	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	m1, err := svc.Publish(ctx, "orders", map[string]interface{}{"id": 1})
	require.NoError(t, err)
	m2, err := svc.Publish(ctx, "orders", map[string]interface{}{"id": 2})
	require.NoError(t, err)
	require.NotEqual(t, m1, m2)

	msg, err := svc.Consume(ctx, "orders")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, m1, msg.ID)
	assert.Equal(t, 1, msg.Payload["id"])

	stats, err := svc.Stats(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{Ready: 1, Unacked: 1, Total: 2}, stats["orders"])

	acked, err := svc.Acknowledge(ctx, "orders", m1)
	require.NoError(t, err)
	assert.True(t, acked)

	stats, err = svc.Stats(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{Ready: 1, Unacked: 0, Total: 1}, stats["orders"])
}

func TestServiceConcurrentConsumeNoDuplicates(t *testing.T) {
	svc := newTestService(constants.BrokerModeStrict)
	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	const total = 200
	for i := 0; i < total; i++ {
		_, err := svc.Publish(ctx, "orders", map[string]interface{}{"seq": i})
		require.NoError(t, err)
	}

	var mu sync.Mutex
	seen := make(map[string]int)

	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for {
				msg, err := svc.Consume(gCtx, "orders")
				if err != nil {
					return err
				}
				if msg == nil {
					return nil
				}
				mu.Lock()
				seen[msg.ID]++
				mu.Unlock()
			}
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, seen, total)
	for id, count := range seen {
		assert.Equal(t, 1, count, fmt.Sprintf("message %s consumed more than once", id))
	}
}

func TestServiceCustomIDGenerator(t *testing.T) {
	gen := &sequenceIDGenerator{}
	cfg := config.BrokerConfig{Mode: constants.BrokerModeStrict, StatsIntervalSeconds: constants.DefaultStatsInterval}
	svc := NewService(NewRegistry(), cfg, logger.NopLogger(), WithIDGenerator(gen))

	ctx := context.Background()
	require.NoError(t, svc.RegisterChannel(ctx, "orders"))

	id, err := svc.Publish(ctx, "orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	id, err = svc.Publish(ctx, "orders", nil)
	require.NoError(t, err)
	assert.Equal(t, "msg-2", id)
}

type sequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("msg-%d", g.n)
}
