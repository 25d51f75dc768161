package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/matt-g-everett/scenetx/scene"
	"github.com/matt-g-everett/scenetx/stream"
	"github.com/pkg/errors"
)

const (
	clientBuffer = 8
	writeTimeout = 5 * time.Second
)

// Api serves the latest frame, the scene tree and a live frame feed to browser viewers.
type Api struct {
	addr       string
	static     string
	controller *stream.Controller
	upgrader   websocket.Upgrader

	mu      sync.RWMutex
	last    []byte
	clients map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// NewApi creates an instance of an Api.
func NewApi(addr, static string, controller *stream.Controller) *Api {
	a := new(Api)
	a.addr = addr
	a.static = static
	a.controller = controller
	a.clients = make(map[*client]struct{})
	return a
}

// Router returns the HTTP routes of the api.
func (a *Api) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/frame", a.handleFrame).Methods(http.MethodGet)
	r.HandleFunc("/api/scene", a.handleScene).Methods(http.MethodGet)
	r.HandleFunc("/api/live", a.handleLive)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(a.static))).Methods(http.MethodGet, http.MethodHead)
	return r
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: a.addr, Handler: a.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "addr", a.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "api")
	}
	return nil
}

// SendFrame keeps f as the latest frame and pushes it to live clients.
// Clients that cannot keep up are disconnected.
func (a *Api) SendFrame(f *stream.Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encode frame")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = b
	for c := range a.clients {
		select {
		case c.send <- b:
		default:
			slog.Warn("live client too slow, dropping", "remote", c.remote)
			a.removeLocked(c)
		}
	}
	return nil
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	last := a.last
	a.mu.RUnlock()

	if last == nil {
		http.Error(w, "no frame rendered yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(last)
}

func (a *Api) handleScene(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	var root *nodeJSON
	err := a.controller.Do(ctx, func(g *scene.Graph) {
		root = snapshot(g.Root())
	})
	if err != nil {
		http.Error(w, "scene unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(root); err != nil {
		slog.Warn("write scene", "err", err)
	}
}

func (a *Api) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade", "err", err)
		return
	}

	c := &client{conn: conn, remote: conn.RemoteAddr().String(), send: make(chan []byte, clientBuffer)}
	a.mu.Lock()
	a.clients[c] = struct{}{}
	a.mu.Unlock()
	slog.Debug("live client connected", "remote", c.remote)

	go a.writeLoop(c)
	a.readLoop(c)
}

// readLoop discards client messages and unregisters the client once it goes away.
func (a *Api) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			a.mu.Lock()
			a.removeLocked(c)
			a.mu.Unlock()
			return
		}
	}
}

func (a *Api) writeLoop(c *client) {
	defer c.conn.Close()
	for b := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			slog.Debug("live client write", "err", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (a *Api) removeLocked(c *client) {
	if _, ok := a.clients[c]; !ok {
		return
	}
	delete(a.clients, c)
	close(c.send)
}

func (a *Api) clientCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.clients)
}

type transformJSON struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`
}

type nodeJSON struct {
	ID         scene.NodeID   `json:"id"`
	Name       string         `json:"name"`
	Transform  transformJSON  `json:"transform"`
	Payload    *scene.Payload `json:"payload,omitempty"`
	Animations []string       `json:"animations,omitempty"`
	Children   []*nodeJSON    `json:"children,omitempty"`
}

func snapshot(n *scene.Node) *nodeJSON {
	out := &nodeJSON{
		ID:   n.ID,
		Name: n.Name,
		Transform: transformJSON{
			Position: n.Transform.Position,
			Rotation: n.Transform.Rotation,
			Scale:    n.Transform.Scale,
		},
	}
	if n.Payload != nil {
		p := *n.Payload
		out.Payload = &p
	}
	for _, a := range n.Animations() {
		out.Animations = append(out.Animations, a.Name)
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, snapshot(c))
	}
	return out
}
