package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matt-g-everett/scenetx/scene"
)

const (
	queueSize        = 256
	defaultFrameRate = 60
)

// A Sink receives every frame the Controller renders.
type Sink interface {
	SendFrame(f *Frame) error
}

// Controller owns the fixed-rate loop: it advances scene time, renders the graph
// and hands each frame to its sinks. The graph and camera are only touched from
// the goroutine calling Step or Run.
type Controller struct {
	graph     *scene.Graph
	camera    *scene.Camera
	light     scene.Light
	sinks     []Sink
	frameTime time.Duration
	sceneTime time.Duration
	seq       uint32

	input chan scene.InputEvent
	edits chan func(*scene.Graph)
}

// NewController creates an instance of a Controller running at frameRate frames per second.
func NewController(graph *scene.Graph, camera *scene.Camera, light scene.Light, frameRate float64,
	sinks ...Sink) *Controller {

	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}

	c := new(Controller)
	c.graph = graph
	c.camera = camera
	c.light = light
	c.sinks = sinks
	c.frameTime = time.Duration(float64(time.Second) / frameRate)
	c.input = make(chan scene.InputEvent, queueSize)
	c.edits = make(chan func(*scene.Graph), queueSize)
	return c
}

// AddSink registers another frame consumer. It must be called before Run.
func (c *Controller) AddSink(s Sink) {
	c.sinks = append(c.sinks, s)
}

// FrameTime returns the fixed scene-time increment per frame.
func (c *Controller) FrameTime() time.Duration { return c.frameTime }

// SceneTime returns the scene time of the last rendered frame.
func (c *Controller) SceneTime() time.Duration { return c.sceneTime }

// Queue hands input events to the loop. It never blocks; events are dropped
// when the loop falls behind.
func (c *Controller) Queue(events ...scene.InputEvent) {
	for _, e := range events {
		select {
		case c.input <- e:
		default:
			slog.Warn("input queue full, dropping event")
			return
		}
	}
}

// Do runs fn against the graph between two frames and waits for it to finish.
func (c *Controller) Do(ctx context.Context, fn func(*scene.Graph)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	edit := func(g *scene.Graph) {
		defer close(done)
		fn(g)
	}
	select {
	case c.edits <- edit:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) drain() {
	for {
		select {
		case fn := <-c.edits:
			fn(c.graph)
		default:
			return
		}
	}
}

func (c *Controller) pendingInput() []scene.InputEvent {
	var events []scene.InputEvent
	for {
		select {
		case e := <-c.input:
			events = append(events, e)
		default:
			return events
		}
	}
}

// Step renders a single frame and sends it to every sink.
func (c *Controller) Step() *Frame {
	c.drain()
	c.camera.Update(c.pendingInput())

	c.sceneTime += c.frameTime
	c.seq++
	f := NewFrame(c.seq, c.sceneTime)
	c.graph.Render(c.sceneTime, c.camera, c.light, f)

	for _, s := range c.sinks {
		if err := s.SendFrame(f); err != nil {
			slog.Error("send frame", "sink", fmt.Sprintf("%T", s), "seq", f.Seq, "err", err)
		}
	}
	return f
}

// Run renders frames at the configured rate until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	slog.Info("controller running", "frameTime", c.frameTime, "sinks", len(c.sinks))
	ticker := time.NewTicker(c.frameTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Step()
		case <-ctx.Done():
			slog.Info("controller stopped", "frames", c.seq, "sceneTime", c.sceneTime)
			return ctx.Err()
		}
	}
}
