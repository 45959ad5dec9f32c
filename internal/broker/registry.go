package broker

import "sync"

// Registry owns every channel in the process. It is an explicitly owned
// object handed to the service and router, not a package-level singleton.
// State lives for the lifetime of the broker process; a restart is
// equivalent to purging all channels.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*channel
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]*channel),
	}
}

// Register creates an empty channel under name. Reports false when the name
// is already taken; the existing channel is left untouched. Exactly one of
// two concurrent Register calls with the same name succeeds.
func (r *Registry) Register(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channels[name]; ok {
		return false
	}
	r.channels[name] = newChannel(name)

	return true
}

func (r *Registry) get(name string) (*channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[name]
	return ch, ok
}

func (r *Registry) getOrCreate(name string) *channel {
	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return ch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.channels[name]; ok {
		return ch
	}
	ch = newChannel(name)
	r.channels[name] = ch

	return ch
}

// snapshot returns the current channels. The slice is a copy; the channels
// themselves guard their own state.
func (r *Registry) snapshot() []*channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]*channel, 0, len(r.channels))
	for _, ch := range r.channels {
		channels = append(channels, ch)
	}

	return channels
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.channels)
}
