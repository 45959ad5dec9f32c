package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_messages_published_total",
			Help: "Total number of messages published per channel (count)",
		},
		[]string{"channel"},
	)

	MessagesConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_messages_consumed_total",
			Help: "Total number of messages consumed per channel (count)",
		},
		[]string{"channel"},
	)

	MessagesAcknowledgedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_messages_acknowledged_total",
			Help: "Total number of messages acknowledged per channel (count)",
		},
		[]string{"channel"},
	)

	MessagesPurgedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broker_messages_purged_total",
			Help: "Total number of messages discarded by channel purges (count)",
		},
		[]string{"channel"},
	)

	ChannelReadyMessages = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "broker_channel_ready_messages",
			Help: "Number of messages awaiting delivery per channel (count)",
		},
		[]string{"channel"},
	)

	ChannelUnackedMessages = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "broker_channel_unacked_messages",
			Help: "Number of delivered but unacknowledged messages per channel (count)",
		},
		[]string{"channel"},
	)

	ChannelsRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "broker_channels_registered",
			Help: "Number of registered channels (count)",
		},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broker_operation_duration_ms",
			Help:    "Duration of queue engine operations in milliseconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 5, 10, 25, 50},
		},
		[]string{"operation"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked by the rate limiter (count)",
		},
		[]string{"status"},
	)
)

func RegisterBrokerMetrics() {
	prometheus.MustRegister(
		MessagesPublishedTotal,
		MessagesConsumedTotal,
		MessagesAcknowledgedTotal,
		MessagesPurgedTotal,
		ChannelReadyMessages,
		ChannelUnackedMessages,
		ChannelsRegistered,
		OperationDuration,
	)
}

func RegisterRateLimitMetrics() {
	prometheus.MustRegister(RateLimitRequestsTotal)
}

func ObserveOperationDuration(operation string, duration time.Duration) {
	OperationDuration.WithLabelValues(operation).Observe(float64(duration.Microseconds()) / 1000.0)
}

func SetChannelDepth(channel string, ready, unacked int) {
	ChannelReadyMessages.WithLabelValues(channel).Set(float64(ready))
	ChannelUnackedMessages.WithLabelValues(channel).Set(float64(unacked))
}
