package broker

import "sync"

// channel holds the per-channel message state. A message id exists in
// exactly one of ready/unacked at any time. All mutations go through the
// channel mutex so concurrent consumers never observe the same message.
type channel struct {
	name    string
	mu      sync.Mutex
	ready   []*Message
	unacked map[string]*Message
}

func newChannel(name string) *channel {
	return &channel{
		name:    name,
		unacked: make(map[string]*Message),
	}
}

func (c *channel) enqueue(msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ready = append(c.ready, msg)
}

// dequeue moves the head of the ready queue into the unacked set. Insertion
// order is the delivery order.
func (c *channel) dequeue() (*Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.ready) == 0 {
		return nil, false
	}

	msg := c.ready[0]
	c.ready[0] = nil // drop the slot reference so the backing array does not pin the message
	c.ready = c.ready[1:]
	c.unacked[msg.ID] = msg

	return msg, true
}

// acknowledge destroys a delivered message. Reports false when the id is not
// in the unacked set; acknowledging twice is a no-op.
func (c *channel) acknowledge(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.unacked[id]; !ok {
		return false
	}
	delete(c.unacked, id)

	return true
}

// purge discards every message, delivered or not, and reports how many were
// removed.
func (c *channel) purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.ready) + len(c.unacked)
	c.ready = nil
	c.unacked = make(map[string]*Message)

	return removed
}

func (c *channel) stats() ChannelStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ChannelStats{
		Ready:   len(c.ready),
		Unacked: len(c.unacked),
		Total:   len(c.ready) + len(c.unacked),
	}
}
