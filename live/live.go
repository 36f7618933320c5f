// Package live pushes Simulation state to browser clients over a
// websocket, replacing the out-of-scope native GUI the original
// implementation used for interactive viewing. It is grounded in
// niceyeti-tabular/server/server.go's "push state updates to the client
// over a websocket" design: the same gorilla/websocket Upgrader, the
// same per-connection write goroutine, and the same update-dropping
// policy under backpressure — generalized here from the teacher's
// single-assumed-client model to fan out a frame to every connected
// viewer.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/quantity"
	"github.com/katalvlaran/marblesim/simulation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const (
	// writeWait is the time allowed to write a frame to a peer.
	writeWait = 5 * time.Second
	// pongWait is the time allowed to read the next pong from a peer.
	pongWait = 60 * time.Second
	// pingPeriod sends pings with this period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// clientBacklog bounds how many unsent frames a slow client tolerates
	// before newer frames silently replace the pending one.
	clientBacklog = 1
)

// MarbleState is the JSON-wire shape of one marble's instantaneous state.
type MarbleState struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
	R  float64 `json:"r"`
}

// Frame is the JSON-wire shape pushed to every connected viewer.
type Frame struct {
	T       float64       `json:"t"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Marbles []MarbleState `json:"marbles"`
}

// frameFrom snapshots s into a wire Frame.
func frameFrom(s *simulation.Simulation) Frame {
	marbles := s.Marbles()
	now := quantity.At(s.T())
	out := Frame{
		T:       s.T(),
		Width:   s.Width(),
		Height:  s.Height(),
		Marbles: make([]MarbleState, len(marbles)),
	}
	for i, m := range marbles {
		out.Marbles[i] = marbleState(i, m, now)
	}
	return out
}

func marbleState(id int, m *marble.Marble, now quantity.Instant) MarbleState {
	x, y := m.Position(now)
	vx, vy := m.Velocity()
	return MarbleState{ID: id, X: x.F(), Y: y.F(), VX: vx.F(), VY: vy.F(), R: m.Radius().F()}
}

// Broadcaster implements simulation.Handler, pushing a Frame to every
// connected websocket client on Begin and on every Tick. Register it with
// simulation.WithHandler, then mount its HandleWebsocket method as an
// http.HandlerFunc.
type Broadcaster struct {
	mu      sync.Mutex
	sim     *simulation.Simulation
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// NewBroadcaster returns a Broadcaster with no connected clients.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[*client]struct{})}
}

// Begin implements simulation.Handler.
func (b *Broadcaster) Begin(s *simulation.Simulation) {
	b.mu.Lock()
	b.sim = s
	b.mu.Unlock()
	b.broadcast(frameFrom(s))
}

// Tick implements simulation.Handler.
func (b *Broadcaster) Tick() {
	b.mu.Lock()
	s := b.sim
	b.mu.Unlock()
	if s == nil {
		return
	}
	b.broadcast(frameFrom(s))
}

// broadcast fans a frame out to every connected client. A client whose
// send buffer is already full has its pending frame replaced rather than
// blocking the simulation loop on a slow reader.
func (b *Broadcaster) broadcast(f Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- f:
		default:
			select {
			case <-c.send:
			default:
			}
			c.send <- f
		}
	}
}

// HandleWebsocket upgrades r to a websocket and registers the connection
// as a viewer until it disconnects. Mount it with
// http.HandleFunc("/ws", broadcaster.HandleWebsocket).
func (b *Broadcaster) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("live: upgrade:", err)
		return
	}

	c := &client{conn: conn, send: make(chan Frame, clientBacklog)}
	b.register(c)
	defer b.unregister(c)

	go c.readPump()
	c.writePump()
}

func (b *Broadcaster) register(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = struct{}{}
}

func (b *Broadcaster) unregister(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, c)
	c.conn.Close()
}

// readPump discards inbound messages and keeps the connection's deadlines
// alive on pong receipt, until the peer disconnects.
func (c *client) readPump() {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

// writePump serializes every Frame and ping to the wire, returning when
// the connection closes.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(f)
			if err != nil {
				log.Println("live: marshal frame:", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
