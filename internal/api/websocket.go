package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"facekey/internal/protocol"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// wsConn is one UI connection. Frames are dispatched one at a time in
// arrival order, so a Press is always injected before the Release sent
// after it.
type wsConn struct {
	disp Dispatcher
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	log  zerolog.Logger
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := zerolog.Ctx(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := &wsConn{
		disp: s.disp,
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
		log:  l.With().Str("remote", r.RemoteAddr).Logger(),
	}
	c.log.Info().Msg("WebSocket client connected")

	go c.writePump()
	c.readPump()
}

// readPump reads request frames until the connection fails.
func (c *wsConn) readPump() {
	defer func() {
		close(c.send)
		c.log.Info().Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxBodySize)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		var req protocol.Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.reply(protocol.Response{Error: "invalid request: " + err.Error()})
			continue
		}

		c.reply(c.disp.Dispatch(req))
	}
}

func (c *wsConn) reply(resp protocol.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to marshal response")
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

// writePump is the only writer on the connection.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
