package stream

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/pkg/errors"
)

// Frame holds the render commands produced by one traversal pass.
type Frame struct {
	Seq      uint32
	Time     time.Duration
	Commands []scene.RenderCommand
}

// NewFrame creates a new Frame instance.
func NewFrame(seq uint32, t time.Duration) *Frame {
	f := new(Frame)
	f.Seq = seq
	f.Time = t
	return f
}

// Render appends cmd to the frame.
func (f *Frame) Render(cmd scene.RenderCommand) {
	f.Commands = append(f.Commands, cmd)
}

// MarshalBinary converts a Frame into the little-endian wire format read by renderers:
// seq u32, time ns u64, count u16, then per command the four handles as u8-length
// strings, world, view, projection and MVP as 16 f32 each, light position as 4 f32
// and light colour as 3 bytes.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Commands) > math.MaxUint16 {
		return nil, errors.Errorf("frame %d: too many commands (%d)", f.Seq, len(f.Commands))
	}

	buf := bytes.NewBuffer(make([]byte, 0, 14+len(f.Commands)*300))
	le := binary.LittleEndian
	binary.Write(buf, le, f.Seq)
	binary.Write(buf, le, uint64(f.Time))
	binary.Write(buf, le, uint16(len(f.Commands)))

	for i := range f.Commands {
		c := &f.Commands[i]
		for _, h := range []scene.Handle{c.Geometry, c.Material, c.Texture, c.Shader} {
			if len(h) > math.MaxUint8 {
				return nil, errors.Errorf("frame %d: handle %q too long", f.Seq, h)
			}
			buf.WriteByte(byte(len(h)))
			buf.WriteString(string(h))
		}
		for _, m := range []mgl32.Mat4{c.World, c.View, c.Projection, c.MVP()} {
			binary.Write(buf, le, m)
		}
		binary.Write(buf, le, c.Light.Position)
		r, g, b := c.Light.Color.Clamped().RGB255()
		buf.Write([]byte{r, g, b})
	}

	return buf.Bytes(), nil
}

type lightJSON struct {
	Position mgl32.Vec4 `json:"position"`
	Color    string     `json:"color"`
}

type commandJSON struct {
	Node       scene.NodeID `json:"node"`
	Name       string       `json:"name"`
	World      mgl32.Mat4   `json:"world"`
	View       mgl32.Mat4   `json:"view"`
	Projection mgl32.Mat4   `json:"projection"`
	MVP        mgl32.Mat4   `json:"mvp"`
	scene.Payload
	Light lightJSON `json:"light"`
}

type frameJSON struct {
	Seq      uint32        `json:"seq"`
	TimeMs   int64         `json:"timeMs"`
	Commands []commandJSON `json:"commands"`
}

// MarshalJSON encodes the frame for browser viewers.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{
		Seq:      f.Seq,
		TimeMs:   f.Time.Milliseconds(),
		Commands: make([]commandJSON, 0, len(f.Commands)),
	}
	for i := range f.Commands {
		c := &f.Commands[i]
		out.Commands = append(out.Commands, commandJSON{
			Node:       c.Node,
			Name:       c.Name,
			World:      c.World,
			View:       c.View,
			Projection: c.Projection,
			MVP:        c.MVP(),
			Payload:    c.Payload,
			Light:      lightJSON{Position: c.Light.Position, Color: c.Light.Color.Clamped().Hex()},
		})
	}
	return json.Marshal(out)
}
