package broker

import (
	"context"
	"fmt"
	"time"

	"courier/internal/config"
	"courier/internal/constants"
	"courier/internal/logger"
	pkgerrors "courier/pkg/errors"
	"courier/pkg/metrics"
	"courier/pkg/tracing"
)

// Service is the queue engine. It wraps the channel registry with the
// delivery policy, id generation, metrics and logging. Delivery is
// at-least-once: a consumed message stays in the unacked set until it is
// explicitly acknowledged or the channel is purged, never redelivered on a
// timeout.
type Service struct {
	registry *Registry
	ids      IDGenerator
	cfg      config.BrokerConfig
	logger   logger.Logger
}

type ServiceOption func(*Service)

func WithIDGenerator(gen IDGenerator) ServiceOption {
	return func(s *Service) {
		s.ids = gen
	}
}

func NewService(registry *Registry, cfg config.BrokerConfig, log logger.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		ids:      NewUUIDGenerator(),
		cfg:      cfg,
		logger:   log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) lenient() bool {
	return s.cfg.Mode == constants.BrokerModeLenient
}

func channelNotFound(name string) error {
	return pkgerrors.ErrNotFound.
		WithMessage(fmt.Sprintf("channel %s does not exist", name)).
		WithDetail("channel", name)
}

// RegisterChannel creates a new empty channel. Registering an existing name
// fails with a conflict and has no side effect.
func (s *Service) RegisterChannel(ctx context.Context, name string) error {
	ctx, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.register_channel")
	defer span.End()
	start := time.Now()

	if !s.registry.Register(name) {
		return pkgerrors.ErrConflict.
			WithMessage(fmt.Sprintf("channel %s already exists", name)).
			WithDetail("channel", name)
	}

	metrics.ChannelsRegistered.Set(float64(s.registry.Len()))
	metrics.ObserveOperationDuration("register", time.Since(start))
	s.logger.InfowCtx(ctx, "Channel registered", "channel", name)

	return nil
}

// Publish creates a message with a fresh id and appends it to the channel's
// ready queue. Returns the generated id. In lenient mode the channel is
// created on first publish.
func (s *Service) Publish(ctx context.Context, name string, payload map[string]interface{}) (string, error) {
	ctx, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.publish")
	defer span.End()
	start := time.Now()

	var ch *channel
	if s.lenient() {
		ch = s.registry.getOrCreate(name)
	} else {
		var ok bool
		ch, ok = s.registry.get(name)
		if !ok {
			return "", channelNotFound(name)
		}
	}

	msg := &Message{
		ID:      s.ids.NewID(),
		Payload: payload,
	}
	ch.enqueue(msg)

	metrics.MessagesPublishedTotal.WithLabelValues(name).Inc()
	metrics.ObserveOperationDuration("publish", time.Since(start))
	s.logger.DebugwCtx(ctx, "Message published",
		"channel", name,
		"message_id", msg.ID,
	)

	return msg.ID, nil
}

// Consume removes the head of the ready queue, parks it in the unacked set
// and returns it. An empty ready queue is a normal nil result, not an
// error. The returned message is a copy; the caller holds no reference to
// engine state.
func (s *Service) Consume(ctx context.Context, name string) (*Message, error) {
	ctx, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.consume")
	defer span.End()
	start := time.Now()

	ch, ok := s.registry.get(name)
	if !ok {
		if s.lenient() {
			return nil, nil
		}
		return nil, channelNotFound(name)
	}

	msg, ok := ch.dequeue()
	if !ok {
		return nil, nil
	}

	metrics.MessagesConsumedTotal.WithLabelValues(name).Inc()
	metrics.ObserveOperationDuration("consume", time.Since(start))
	s.logger.DebugwCtx(ctx, "Message consumed",
		"channel", name,
		"message_id", msg.ID,
	)

	delivered := *msg
	return &delivered, nil
}

// Acknowledge destroys a delivered message. Reports whether a message was
// actually removed; acknowledging an unknown or already-acknowledged id is
// a no-op, not an error.
func (s *Service) Acknowledge(ctx context.Context, name, messageID string) (bool, error) {
	ctx, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.acknowledge")
	defer span.End()
	start := time.Now()

	ch, ok := s.registry.get(name)
	if !ok {
		return false, channelNotFound(name)
	}

	acked := ch.acknowledge(messageID)
	if acked {
		metrics.MessagesAcknowledgedTotal.WithLabelValues(name).Inc()
		s.logger.DebugwCtx(ctx, "Message acknowledged",
			"channel", name,
			"message_id", messageID,
		)
	}
	metrics.ObserveOperationDuration("acknowledge", time.Since(start))

	return acked, nil
}

// Purge atomically discards every message in the channel, acknowledged or
// not.
func (s *Service) Purge(ctx context.Context, name string) error {
	ctx, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.purge")
	defer span.End()
	start := time.Now()

	ch, ok := s.registry.get(name)
	if !ok {
		return channelNotFound(name)
	}

	removed := ch.purge()

	metrics.MessagesPurgedTotal.WithLabelValues(name).Add(float64(removed))
	metrics.SetChannelDepth(name, 0, 0)
	metrics.ObserveOperationDuration("purge", time.Since(start))
	s.logger.InfowCtx(ctx, "Channel purged",
		"channel", name,
		"removed", removed,
	)

	return nil
}

// Stats reports queue depth keyed by channel name. With an empty name every
// registered channel is reported; with a name only that channel. A missing
// channel is an error in strict mode and an empty result in lenient mode.
func (s *Service) Stats(ctx context.Context, name string) (map[string]ChannelStats, error) {
	_, span := tracing.GetTracer(constants.ServiceName).Start(ctx, "broker.stats")
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.ObserveOperationDuration("stats", time.Since(start))
	}()

	result := make(map[string]ChannelStats)

	if name == "" {
		for _, ch := range s.registry.snapshot() {
			result[ch.name] = ch.stats()
		}
		return result, nil
	}

	ch, ok := s.registry.get(name)
	if !ok {
		if s.lenient() {
			return result, nil
		}
		return nil, channelNotFound(name)
	}

	result[name] = ch.stats()
	return result, nil
}

// StartStatsUpdater refreshes the channel depth gauges until ctx is done.
func (s *Service) StartStatsUpdater(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.updateGauges()

	for {
		select {
		case <-ticker.C:
			s.updateGauges()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Service) updateGauges() {
	for _, ch := range s.registry.snapshot() {
		st := ch.stats()
		metrics.SetChannelDepth(ch.name, st.Ready, st.Unacked)
	}
	metrics.ChannelsRegistered.Set(float64(s.registry.Len()))
}
