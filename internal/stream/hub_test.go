package stream

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	env, err := DecodeEnvelope(msg)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	return env
}

func TestHub_WelcomeThenFrames(t *testing.T) {
	hub := NewHub(func() ([]byte, error) {
		return Encode(MsgWelcome, Welcome{Lines: []uint32{0, 1}})
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv.URL)

	// the viewer is registered before its welcome is queued
	if env := readEnvelope(t, conn); env.T != MsgWelcome {
		t.Fatalf("first message type = %q, want %q", env.T, MsgWelcome)
	}
	if hub.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", hub.Len())
	}

	for tick := range uint64(3) {
		msg, err := Encode(MsgFrame, Frame{Tick: tick})
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		hub.Broadcast(msg)

		env := readEnvelope(t, conn)
		frame, err := DecodePayload[Frame](env)
		if err != nil {
			t.Fatalf("DecodePayload() error = %v", err)
		}
		if env.T != MsgFrame || frame.Tick != tick {
			t.Errorf("message %q tick %d, want %q tick %d", env.T, frame.Tick, MsgFrame, tick)
		}
	}
}

func TestHub_WelcomeError(t *testing.T) {
	hub := NewHub(func() ([]byte, error) {
		return nil, errors.New("no topology")
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Errorf("the connection should be closed")
	}
	if hub.Len() != 0 {
		t.Errorf("Len() = %d, want 0", hub.Len())
	}
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv.URL)
	deadline := time.Now().Add(5 * time.Second)
	for hub.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	hub.Close()
	if hub.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", hub.Len())
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Errorf("ReadMessage() after Close should fail")
	}
}
