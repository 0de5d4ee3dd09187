package ipc

import (
	"log/slog"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one game session talking to the player.
// Each session gets its own connection, identified after the hello handshake.
type Connection struct {
	framer   Framer
	handlers map[string]Handler
	Instance string
}

func NewConnection(framer Framer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		framer:   framer,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// ReadLoop blocks until the connection closes or errors. It owns the framer
// lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.framer.Close()

	for {
		env, err := c.framer.ReadEnvelope()
		if err != nil {
			slog.Info("connection read ended", "instance", c.Instance, "remote", c.framer.RemoteAddr(), "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.framer.WriteEnvelope(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "instance", c.Instance)
		}
	}
}
