package broker

// Message is a unit of work owned by exactly one channel at a time. The
// payload is opaque to the engine: it is never inspected or transformed.
type Message struct {
	ID      string                 `json:"message_id"`
	Payload map[string]interface{} `json:"payload"`
}

// ChannelStats reports queue depth for a single channel.
type ChannelStats struct {
	Ready   int `json:"ready_messages"`
	Unacked int `json:"unacked_messages"`
	Total   int `json:"total"`
}

// Request is the body accepted by every broker operation. Operations ignore
// the fields they do not use.
type Request struct {
	Channel   string                 `json:"channel"`
	Payload   map[string]interface{} `json:"payload"`
	MessageID string                 `json:"message_id"`
}

// Response is the envelope returned by every broker operation. All fields
// are always serialized; absent values are empty, not omitted.
type Response struct {
	Data      map[string]interface{} `json:"data"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error"`
	MessageID string                 `json:"message_id"`
}
