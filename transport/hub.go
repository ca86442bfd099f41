// Package transport implements the websocket event bus that embeds the
// control kernel: one reader goroutine per connection decodes inbound
// command envelopes and calls into control.Robot; Hub implements
// control.Publisher by fanning broadcaster ticks out to every connection.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go.viam.com/rdk/logging"

	"armkernel/control"
	"armkernel/kinematics"
)

const (
	eventSetJointState = "set joint state"
	eventSetCoordState = "set coord state"
	eventSetBaseState  = "set base state"

	eventJointState = "joint state"
	eventBaseCoords = "base coords"

	outboundBuffer = 64
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// envelope is the wire shape of every event this hub exchanges: an event
// name and its raw payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub is a gorilla/websocket fan-out registry. It implements
// control.Publisher and also owns the inbound side: one goroutine per
// connection reads command envelopes and dispatches them to robot.
type Hub struct {
	robot  *control.Robot
	logger logging.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client wraps one websocket connection with a bounded outbound channel.
// writeLoop is the only goroutine that ever writes to conn, which is what
// makes that safe — gorilla/websocket connections tolerate one reader and
// one writer goroutine, but not concurrent writers.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	closeMu sync.Once
}

// NewHub constructs a Hub dispatching inbound commands to robot.
func NewHub(robot *control.Robot, logger logging.Logger) *Hub {
	return &Hub{
		robot:   robot,
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request to a websocket connection and registers
// it with the hub, spawning its reader and writer goroutines.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, outboundBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("subscriber connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop decodes inbound command envelopes and dispatches them to robot
// until the connection errors or closes, then unregisters the client.
func (h *Hub) readLoop(c *client) {
	defer h.unregister(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debugf("subscriber read error: %v", err)
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.logger.Debugf("dropping malformed envelope: %v", err)
			continue
		}
		h.dispatch(env)
	}
}

// dispatch routes one decoded inbound envelope to the matching
// control.Robot setter. Commands the kernel cannot parse or does not
// recognize are dropped and logged, never fatal to the connection.
func (h *Hub) dispatch(env envelope) {
	switch env.Event {
	case eventSetJointState:
		var js kinematics.JointState
		if err := json.Unmarshal(env.Data, &js); err != nil {
			h.logger.Debugf("malformed %q payload: %v", env.Event, err)
			return
		}
		h.robot.SetJointTarget(js, true)

	case eventSetCoordState:
		var c kinematics.Coord4DOF
		if err := json.Unmarshal(env.Data, &c); err != nil {
			h.logger.Debugf("malformed %q payload: %v", env.Event, err)
			return
		}
		h.robot.SetTargetCoord(c)

	case eventSetBaseState:
		var c kinematics.Coord4DOF
		if err := json.Unmarshal(env.Data, &c); err != nil {
			h.logger.Debugf("malformed %q payload: %v", env.Event, err)
			return
		}
		h.robot.SetTargetBase(c)

	default:
		h.logger.Debugf("unrecognized inbound event %q", env.Event)
	}
}

// writeLoop drains c.send and writes each frame to the connection. It is
// the only goroutine that calls conn.WriteMessage for this client.
func (h *Hub) writeLoop(c *client) {
	for raw := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.logger.Debugf("subscriber write failed, dropping: %v", err)
			h.unregister(c)
			return
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.closeMu.Do(func() {
		close(c.send)
		c.conn.Close()
	})
	h.logger.Info("subscriber disconnected")
}

// publish marshals an envelope and queues it to every registered client.
// A full outbound channel drops that client's message rather than
// blocking the broadcaster tick that called PublishJointState or
// PublishBaseCoords.
func (h *Hub) publish(event string, data interface{}) {
	raw, err := json.Marshal(envelope{Event: event, Data: mustMarshal(data)})
	if err != nil {
		h.logger.Warnf("failed to marshal outbound event %q: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			h.logger.Warnf("subscriber outbound buffer full, dropping %q", event)
		}
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}

// PublishJointState implements control.Publisher.
func (h *Hub) PublishJointState(msg control.JointStateMsg) {
	h.publish(eventJointState, msg)
}

// PublishBaseCoords implements control.Publisher.
func (h *Hub) PublishBaseCoords(c kinematics.Coord4DOF) {
	h.publish(eventBaseCoords, c)
}

