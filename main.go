package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/matt-g-everett/scenetx/api"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/stream"
	"github.com/pkg/errors"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Input      *stream.Input
	Api        *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	slog.Info("connected", "broker", a.Config.Mqtt.URL)
	if err := a.Input.Subscribe(); err != nil {
		slog.Error("input unavailable", "err", err)
	}
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	slog.Warn("connection lost", "broker", a.Config.Mqtt.URL, "err", err)
}

func (a *app) readConfig(configPath string) {
	c, err := stream.ReadConfig(configPath)
	if err != nil {
		panic(err)
	}
	a.Config = c
}

func (a *app) setupLogging() {
	level, _ := a.Config.LogLevel()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	mqtt.ERROR = slog.NewLogLogger(handler, slog.LevelError)
	mqtt.CRITICAL = slog.NewLogLogger(handler, slog.LevelError)
	mqtt.WARN = slog.NewLogLogger(handler, slog.LevelWarn)
}

func (a *app) build() error {
	graph, err := stream.BuildScene(*a.Config.Scene)
	if err != nil {
		return errors.Wrap(err, "build scene")
	}
	opts, err := a.Config.Camera.Options()
	if err != nil {
		return err
	}
	light, err := a.Config.Light.Light()
	if err != nil {
		return err
	}

	clientID := a.Config.Mqtt.ClientID + "-" + uuid.NewString()[:8]
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(clientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(a.Client, a.Config.Mqtt.Topics.Stream)
	a.Controller = stream.NewController(graph, scene.NewCamera(opts), light, a.Config.Loop.FrameRate, a.Streamer)
	a.Input = stream.NewInput(a.Client, a.Config.Mqtt.Topics.Input, a.Controller)
	a.Api = api.NewApi(a.Config.Api.Addr, a.Config.Api.Static, a.Controller)
	a.Controller.AddSink(a.Api)
	return nil
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(ctx); err != nil {
			slog.Error("api stopped", "err", err)
		}
	}()

	a.Controller.Run(ctx)
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	a.setupLogging()
	redacted := a.Config
	redacted.Mqtt.Password = "<redacted>"
	slog.Debug("config loaded", "config", spew.Sdump(redacted))

	if err := a.build(); err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
