package stream

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the transmitter configuration read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Input  string `yaml:"input"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Loop struct {
		FrameRate float64 `yaml:"frameRate"`
	} `yaml:"loop"`
	Api struct {
		Addr   string `yaml:"addr"`
		Static string `yaml:"static"`
	} `yaml:"api"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`
	Scene  *NodeConfig  `yaml:"scene"`
}

// CameraConfig describes the camera. Angles are in degrees.
type CameraConfig struct {
	Position    []float32 `yaml:"position"`
	Yaw         float32   `yaml:"yaw"`
	Pitch       float32   `yaml:"pitch"`
	Fov         float32   `yaml:"fov"`
	Near        float32   `yaml:"near"`
	Far         float32   `yaml:"far"`
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Speed       float32   `yaml:"speed"`
	Sensitivity float32   `yaml:"sensitivity"`
}

// LightConfig describes the scene light. Color is a hex string such as "#ffffff".
type LightConfig struct {
	Position []float32 `yaml:"position"`
	Color    string    `yaml:"color"`
}

// NodeConfig describes a scene node and its subtree. Rotation is in degrees.
type NodeConfig struct {
	Name       string            `yaml:"name"`
	Position   []float32         `yaml:"position"`
	Rotation   []float32         `yaml:"rotation"`
	Scale      []float32         `yaml:"scale"`
	Payload    *scene.Payload    `yaml:"payload"`
	Animations []AnimationConfig `yaml:"animations"`
	Children   []NodeConfig      `yaml:"children"`
}

// AnimationConfig describes an animation as an ordered list of actions.
type AnimationConfig struct {
	Name    string         `yaml:"name"`
	Actions []ActionConfig `yaml:"actions"`
}

// ActionConfig describes one action. Rotate rates are in degrees per second.
type ActionConfig struct {
	Kind     string        `yaml:"kind"`
	Vector   []float32     `yaml:"vector"`
	Rate     float32       `yaml:"rate"`
	Start    time.Duration `yaml:"start"`
	Duration time.Duration `yaml:"duration"`
	Loop     bool          `yaml:"loop"`
	Ease     string        `yaml:"ease"`
}

// ReadConfig reads and validates the YAML config at path.
func ReadConfig(path string) (Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		return c, errors.Wrap(err, "open config")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "decode config %s", path)
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return c, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// SetDefaults fills in every setting left empty.
func (c *Config) SetDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "scenetx"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "scenetx/stream"
	}
	if c.Mqtt.Topics.Input == "" {
		c.Mqtt.Topics.Input = "scenetx/input"
	}
	if c.Loop.FrameRate == 0 {
		c.Loop.FrameRate = 60
	}
	if c.Api.Addr == "" {
		c.Api.Addr = ":3000"
	}
	if c.Api.Static == "" {
		c.Api.Static = "client/dist"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	cam := &c.Camera
	if cam.Fov == 0 {
		cam.Fov = 45
	}
	if cam.Near == 0 {
		cam.Near = 0.1
	}
	if cam.Far == 0 {
		cam.Far = 100
	}
	if cam.Width == 0 || cam.Height == 0 {
		cam.Width, cam.Height = 800, 600
	}
	if cam.Speed == 0 {
		cam.Speed = 0.5
	}
	if cam.Sensitivity == 0 {
		cam.Sensitivity = 0.2
	}

	if c.Light.Position == nil {
		c.Light.Position = []float32{0, 1, 0, 1}
	}
	if c.Light.Color == "" {
		c.Light.Color = "#ffffff"
	}

	if c.Scene == nil {
		s := DefaultScene()
		c.Scene = &s
	}
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Mqtt.URL == "" {
		return errors.New("mqtt.url is required")
	}
	if c.Loop.FrameRate < 0 {
		return errors.Errorf("loop.frameRate must be positive, got %v", c.Loop.FrameRate)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Errorf("camera near/far must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 {
		return errors.Errorf("camera size must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if _, err := vec3(c.Camera.Position, mgl32.Vec3{}); err != nil {
		return errors.Wrap(err, "camera.position")
	}
	if _, err := c.Light.Light(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return level, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return level, nil
}

// Options converts the config into camera options.
func (c CameraConfig) Options() (scene.CameraOptions, error) {
	pos, err := vec3(c.Position, mgl32.Vec3{})
	if err != nil {
		return scene.CameraOptions{}, errors.Wrap(err, "camera.position")
	}
	return scene.CameraOptions{
		Position:    pos,
		Yaw:         mgl32.DegToRad(c.Yaw),
		Pitch:       mgl32.DegToRad(c.Pitch),
		Fov:         mgl32.DegToRad(c.Fov),
		Aspect:      float32(c.Width) / float32(c.Height),
		Near:        c.Near,
		Far:         c.Far,
		Speed:       c.Speed,
		Sensitivity: mgl32.DegToRad(c.Sensitivity),
	}, nil
}

// Light converts the config into a scene light.
func (c LightConfig) Light() (scene.Light, error) {
	if len(c.Position) != 4 {
		return scene.Light{}, errors.Errorf("light.position needs 4 components, got %d", len(c.Position))
	}
	color, err := colorful.Hex(c.Color)
	if err != nil {
		return scene.Light{}, errors.Wrapf(err, "light.color %q", c.Color)
	}
	pos := mgl32.Vec4{c.Position[0], c.Position[1], c.Position[2], c.Position[3]}
	return scene.NewLight(pos, color), nil
}

func vec3(v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, errors.Errorf("need 3 components, got %d", len(v))
}
