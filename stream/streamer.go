package stream

import (
	"log/slog"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// Streamer publishes binary frames over MQTT to renderers.
type Streamer struct {
	client    mqtt.Client
	topic     string
	connected bool
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(client mqtt.Client, topic string) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.connected = true
	return s
}

// SendFrame sends a frame as binary over MQTT. Frames are skipped while the
// client is disconnected.
func (s *Streamer) SendFrame(f *Frame) error {
	if !s.client.IsConnectionOpen() {
		if s.connected {
			slog.Warn("mqtt connection lost, skipping frames", "topic", s.topic)
		}
		s.connected = false
		return nil
	}
	if !s.connected {
		slog.Info("mqtt connection restored, streaming frames", "topic", s.topic)
		s.connected = true
	}

	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 0, false, b)
	token.Wait()
	return errors.Wrapf(token.Error(), "publish frame %d", f.Seq)
}
