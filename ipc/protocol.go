package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
)

// maxFrame bounds a single envelope. Board snapshots with a full table stay
// well under it.
const maxFrame = 1 << 20

// Envelope is the wire format shared with the game session.
// Data is kept as RawMessage so handlers can defer deserialization to the concrete type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal data: %w", err)
	}
	return Envelope{Type: msgType, Data: raw}, nil
}

// Decode unmarshals the envelope payload into v.
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", e.Type, err)
	}
	return nil
}

// Framer moves whole envelopes over some transport.
type Framer interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(env Envelope) error
	Close() error
	RemoteAddr() string
}

// StreamFramer frames envelopes over a byte stream with a 4-byte
// little-endian length prefix.
type StreamFramer struct {
	conn net.Conn
}

func NewStreamFramer(conn net.Conn) *StreamFramer {
	return &StreamFramer{conn: conn}
}

func (f *StreamFramer) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(f.conn) }
func (f *StreamFramer) WriteEnvelope(env Envelope) error { return WriteEnvelope(f.conn, env) }
func (f *StreamFramer) Close() error                     { return f.conn.Close() }

func (f *StreamFramer) RemoteAddr() string {
	if addr := f.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// ReadEnvelope reads a single length-prefixed JSON envelope from r.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return Envelope{}, fmt.Errorf("read length: %w", err)
	}

	// Guard against corrupted frames or malicious payloads.
	if length == 0 || length > maxFrame {
		return Envelope{}, fmt.Errorf("invalid message length: %d", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Envelope{}, fmt.Errorf("read payload: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	return env, nil
}

func WriteEnvelope(w io.Writer, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(payload))); err != nil {
		return fmt.Errorf("write length: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}
