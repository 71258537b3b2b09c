package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var m Message
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	a := NewClient(nil, h, nil)
	b := NewClient(nil, h, nil)
	h.Register(a)
	h.Register(b)
	assert.Equal(t, 2, h.Clients())
	assert.NotEqual(t, a.ID, b.ID)

	h.Broadcast("board_update", map[string]int{"count": 3})
	for _, c := range []*Client{a, b} {
		m := receive(t, c)
		assert.Equal(t, "board_update", m.Type)
		assert.Equal(t, map[string]any{"count": float64(3)}, m.Payload)
		assert.NotEmpty(t, m.Timestamp)
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := NewClient(nil, h, nil)
	h.Register(c)
	h.Unregister(c)
	assert.Equal(t, 0, h.Clients())

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.False(t, c.Enqueue([]byte("late")))
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := NewClient(nil, h, nil)
	h.Register(c)
	for i := 0; i < sendBuffer+1; i++ {
		h.Broadcast("tick", i)
	}
	assert.Eventually(t, func() bool { return h.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStopIsIdempotentAndUnblocks(t *testing.T) {
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	c := NewClient(nil, h, nil)
	h.Register(c)
	h.Stop()
	h.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	late := NewClient(nil, h, nil)
	h.Register(late)
	h.Unregister(late)
	h.Broadcast("ignored", nil)
	assert.Equal(t, 0, h.Clients())
	_, ok := <-late.Send
	assert.False(t, ok)
}

func TestHubRef(t *testing.T) {
	first := NewHub(nil)
	ref := NewHubRef(first)
	got, ok := ref.Get()
	require.True(t, ok)
	assert.Same(t, first, got)

	second := NewHub(nil)
	ref.Set(second)
	got, _ = ref.Get()
	assert.Same(t, second, got)

	ref.Set(nil)
	_, ok = ref.Get()
	assert.False(t, ok)
}
