package constants

import "time"

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	BrokerModeStrict  = "strict"
	BrokerModeLenient = "lenient"
)

const (
	DefaultServerPort    = 8080
	DefaultStatsInterval = 15
)

const (
	ServiceName = "broker-service"
)
