package stream

import (
	"encoding/json"
	"log/slog"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/pkg/errors"
)

// InputMessage is a camera input event as sent by controllers.
// Type is "move" (X right, Y up, Z forward) or "look" (X yaw, Y pitch).
type InputMessage struct {
	Type string  `json:"type"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
}

// Event converts the message into a scene input event.
func (m InputMessage) Event() (scene.InputEvent, error) {
	switch m.Type {
	case "move":
		return scene.InputEvent{Move: mgl32.Vec3{m.X, m.Y, m.Z}}, nil
	case "look":
		return scene.InputEvent{Look: mgl32.Vec2{m.X, m.Y}}, nil
	}
	return scene.InputEvent{}, errors.Errorf("unknown input type %q", m.Type)
}

// Input feeds camera events received over MQTT to a Controller.
type Input struct {
	client     mqtt.Client
	topic      string
	controller *Controller
}

// NewInput creates an instance of an Input.
func NewInput(client mqtt.Client, topic string, controller *Controller) *Input {
	in := new(Input)
	in.client = client
	in.topic = topic
	in.controller = controller
	return in
}

func (in *Input) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	slog.Debug("input message", "id", msg.MessageID(), "topic", msg.Topic(), "payload", string(msg.Payload()))

	var messages []InputMessage
	payload := msg.Payload()
	if len(payload) > 0 && payload[0] == '[' {
		if err := json.Unmarshal(payload, &messages); err != nil {
			slog.Warn("dropping malformed input", "topic", msg.Topic(), "err", err)
			return
		}
	} else {
		var m InputMessage
		if err := json.Unmarshal(payload, &m); err != nil {
			slog.Warn("dropping malformed input", "topic", msg.Topic(), "err", err)
			return
		}
		messages = append(messages, m)
	}

	events := make([]scene.InputEvent, 0, len(messages))
	for _, m := range messages {
		e, err := m.Event()
		if err != nil {
			slog.Warn("dropping input", "topic", msg.Topic(), "err", err)
			continue
		}
		events = append(events, e)
	}
	in.controller.Queue(events...)
}

// Subscribe starts listening for input on the configured topic.
func (in *Input) Subscribe() error {
	token := in.client.Subscribe(in.topic, 0, in.handleClientMessages)
	token.Wait()
	return errors.Wrapf(token.Error(), "subscribe %s", in.topic)
}
