package broker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFIFOOrder(t *testing.T) {
	ch := newChannel("orders")

	for i := 0; i < 5; i++ {
		ch.enqueue(&Message{
			ID:      fmt.Sprintf("m%d", i),
			Payload: map[string]interface{}{"seq": i},
		})
	}

	for i := 0; i < 5; i++ {
		msg, ok := ch.dequeue()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("m%d", i), msg.ID)
	}

	_, ok := ch.dequeue()
	assert.False(t, ok)
}

func TestChannelDequeueMovesToUnacked(t *testing.T) {
	ch := newChannel("orders")
	ch.enqueue(&Message{ID: "m1", Payload: map[string]interface{}{"id": 1}})

	msg, ok := ch.dequeue()
	require.True(t, ok)

	st := ch.stats()
	assert.Equal(t, 0, st.Ready)
	assert.Equal(t, 1, st.Unacked)
	assert.Equal(t, 1, st.Total)

	// the delivered message is gone from ready for good
	_, ok = ch.dequeue()
	assert.False(t, ok)

	assert.True(t, ch.acknowledge(msg.ID))
}

func TestChannelAcknowledgeIdempotent(t *testing.T) {
	ch := newChannel("orders")
	ch.enqueue(&Message{ID: "m1"})

	_, ok := ch.dequeue()
	require.True(t, ok)

	assert.True(t, ch.acknowledge("m1"))
	assert.False(t, ch.acknowledge("m1"))
	assert.False(t, ch.acknowledge("never-delivered"))

	st := ch.stats()
	assert.Equal(t, 0, st.Total)
}

func TestChannelAcknowledgeRequiresDelivery(t *testing.T) {
	ch := newChannel("orders")
	ch.enqueue(&Message{ID: "m1"})

	// still in ready, not yet delivered
	assert.False(t, ch.acknowledge("m1"))

	st := ch.stats()
	assert.Equal(t, 1, st.Ready)
}

func TestChannelPurge(t *testing.T) {
	ch := newChannel("orders")
	for i := 0; i < 4; i++ {
		ch.enqueue(&Message{ID: fmt.Sprintf("m%d", i)})
	}
	_, ok := ch.dequeue()
	require.True(t, ok)

	removed := ch.purge()
	assert.Equal(t, 4, removed)

	st := ch.stats()
	assert.Equal(t, ChannelStats{}, st)

	_, ok = ch.dequeue()
	assert.False(t, ok)

	// channel stays usable after a purge
	ch.enqueue(&Message{ID: "m5"})
	msg, ok := ch.dequeue()
	require.True(t, ok)
	assert.Equal(t, "m5", msg.ID)
}

func TestChannelStatsCounts(t *testing.T) {
	ch := newChannel("orders")
	for i := 0; i < 6; i++ {
		ch.enqueue(&Message{ID: fmt.Sprintf("m%d", i)})
	}
	for i := 0; i < 2; i++ {
		_, ok := ch.dequeue()
		require.True(t, ok)
	}

	st := ch.stats()
	assert.Equal(t, 4, st.Ready)
	assert.Equal(t, 2, st.Unacked)
	assert.Equal(t, 6, st.Total)
}
