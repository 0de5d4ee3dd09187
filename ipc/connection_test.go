package ipc

import (
	"bytes"
	"encoding/binary"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, n := range []uint32{0, maxFrame + 1} {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, n)
		if _, err := ReadEnvelope(&buf); err == nil || !strings.Contains(err.Error(), "invalid message length") {
			t.Errorf("length %d: err = %v, want invalid message length", n, err)
		}
	}
}

func TestReadLoopDispatches(t *testing.T) {
	server, client := net.Pipe()
	conn := NewConnection(NewStreamFramer(server), nil)
	conn.RegisterHandler(TypeHello, func(env Envelope) (*Envelope, error) {
		var hello HelloMessage
		if err := env.Decode(&hello); err != nil {
			return nil, err
		}
		ack, err := NewEnvelope(TypeAck, AckMessage{Status: "ok", Instance: hello.Player})
		return &ack, err
	})
	done := make(chan struct{})
	go func() {
		conn.ReadLoop()
		close(done)
	}()

	peer := NewStreamFramer(client)
	unknown, _ := NewEnvelope("mystery", struct{}{})
	if err := peer.WriteEnvelope(unknown); err != nil {
		t.Fatal(err)
	}
	hello, _ := NewEnvelope(TypeHello, HelloMessage{Player: "rebel"})
	if err := peer.WriteEnvelope(hello); err != nil {
		t.Fatal(err)
	}

	resp, err := peer.ReadEnvelope()
	if err != nil {
		t.Fatal(err)
	}
	var ack AckMessage
	if err := resp.Decode(&ack); err != nil {
		t.Fatal(err)
	}
	if resp.Type != TypeAck || ack.Instance != "rebel" {
		t.Errorf("reply = %s %+v, want ack for rebel", resp.Type, ack)
	}

	client.Close()
	<-done
}

func TestWebSocketFramer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := Upgrade(w, r)
		if err != nil {
			t.Error(err)
			return
		}
		conn := NewConnection(f, nil)
		conn.RegisterHandler(TypeDecision, func(env Envelope) (*Envelope, error) {
			var msg DecisionMessage
			if err := env.Decode(&msg); err != nil {
				return nil, err
			}
			reply, err := NewEnvelope(TypeDecisionResponse, DecisionResponse{DecisionID: msg.DecisionID, Value: msg.Candidates[0].ID})
			return &reply, err
		})
		conn.ReadLoop()
	}))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	peer := NewWebSocketFramer(ws)
	defer peer.Close()

	req, _ := NewEnvelope(TypeDecision, DecisionMessage{DecisionID: "7", Candidates: []CandidateData{{ID: "a", Text: "Done"}}})
	if err := peer.WriteEnvelope(req); err != nil {
		t.Fatal(err)
	}
	resp, err := peer.ReadEnvelope()
	if err != nil {
		t.Fatal(err)
	}
	var answer DecisionResponse
	if err := resp.Decode(&answer); err != nil {
		t.Fatal(err)
	}
	if answer.DecisionID != "7" || answer.Value != "a" {
		t.Errorf("answer = %+v, want decision 7 value a", answer)
	}
}
