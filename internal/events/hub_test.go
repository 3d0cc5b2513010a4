package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish(New(TypeJobCreated, nil))
	assert.Equal(t, TypeJobCreated, (<-a).Type)
	assert.Equal(t, TypeJobCreated, (<-b).Type)
}

func TestHubDropsWhenSlow(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// buffer is 10; the overflow must not block the publisher
	for i := 0; i < 25; i++ {
		h.Publish(New(TypePing, nil))
	}
	assert.Len(t, ch, 10)
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	// publishing after unsubscribe must not panic on the closed channel
	h.Publish(New(TypePing, nil))
	_, open := <-ch
	assert.False(t, open)
}

func TestNewAndEncode(t *testing.T) {
	e := New(TypeRunCompleted, map[string]any{"run_id": 7})
	assert.Equal(t, TypeRunCompleted, e.Type)
	assert.False(t, e.At.IsZero())

	var back Event
	require.NoError(t, json.Unmarshal([]byte(e.Encode()), &back))
	assert.Equal(t, TypeRunCompleted, back.Type)

	var data map[string]any
	require.NoError(t, json.Unmarshal(back.Data, &data))
	assert.Equal(t, float64(7), data["run_id"])

	bare := New(TypePing, nil)
	assert.Nil(t, bare.Data)
	assert.Contains(t, bare.Encode(), `"type":"ping"`)
}
