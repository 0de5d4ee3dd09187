package ipc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
)

// WebSocketFramer carries one envelope per text frame.
type WebSocketFramer struct {
	conn *websocket.Conn
}

func NewWebSocketFramer(conn *websocket.Conn) *WebSocketFramer {
	conn.SetReadLimit(maxFrame)
	return &WebSocketFramer{conn: conn}
}

// Upgrade accepts a WebSocket session on an HTTP request.
func Upgrade(w http.ResponseWriter, r *http.Request) (*WebSocketFramer, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	return NewWebSocketFramer(conn), nil
}

func (f *WebSocketFramer) ReadEnvelope() (Envelope, error) {
	f.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	for {
		messageType, message, err := f.conn.ReadMessage()
		if err != nil {
			return Envelope{}, fmt.Errorf("read frame: %w", err)
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
		}
		return env, nil
	}
}

func (f *WebSocketFramer) WriteEnvelope(env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	f.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := f.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (f *WebSocketFramer) Close() error {
	f.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	f.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return f.conn.Close()
}

func (f *WebSocketFramer) RemoteAddr() string {
	return f.conn.RemoteAddr().String()
}
