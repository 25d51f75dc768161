package stream

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamerSendFrame(t *testing.T) {
	client := newFakeClient()
	s := NewStreamer(client, "home/scene/stream")

	f := NewFrame(1, time.Second)
	f.Render(testCommand())
	require.NoError(t, s.SendFrame(f))

	require.Len(t, client.published, 1)
	p := client.published[0]
	assert.Equal(t, "home/scene/stream", p.topic)
	assert.Equal(t, byte(0), p.qos)
	want, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, want, p.payload)
}

func TestStreamerPublishError(t *testing.T) {
	client := newFakeClient()
	client.err = errors.New("not authorised")
	s := NewStreamer(client, "t")
	err := s.SendFrame(NewFrame(5, 0))
	assert.ErrorContains(t, err, "publish frame 5")
	assert.ErrorContains(t, err, "not authorised")
}

func TestStreamerDisconnected(t *testing.T) {
	client := newFakeClient()
	client.open = false
	s := NewStreamer(client, "t")
	assert.NoError(t, s.SendFrame(NewFrame(1, 0)))
	assert.NoError(t, s.SendFrame(NewFrame(2, 0)))
	assert.Empty(t, client.published)

	client.open = true
	assert.NoError(t, s.SendFrame(NewFrame(3, 0)))
	assert.Len(t, client.published, 1)
}
