// Package stream broadcasts cloth frames to websocket viewers.
//
// Every message is a JSON envelope {"t": type, "p": payload}. A viewer first receives
// a welcome message with the static topology, then one frame message per simulation tick.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akmonengine/cloth/mesh"
)

const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
)

var ErrEmptyMessage = errors.New("stream: empty message")

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Welcome describes what does not change between frames
type Welcome struct {
	Lines     []uint32 `json:"lines"`
	Triangles []uint32 `json:"triangles"`
	Frame     Frame    `json:"frame"`
}

// Frame is a snapshot of the cloth after an update
type Frame struct {
	Tick        uint64       `json:"tick"`
	Positions   [][3]float32 `json:"positions"`
	Highlighted []uint32     `json:"highlighted"`
}

// NewFrame copies the current buffers of the mesh
func NewFrame(tick uint64, m *mesh.Mesh) Frame {
	f := Frame{
		Tick:        tick,
		Positions:   make([][3]float32, len(m.Vertices)),
		Highlighted: append([]uint32{}, m.Highlighted...),
	}
	for i, v := range m.Vertices {
		f.Positions[i] = v
	}

	return f
}

// NewWelcome builds the first message sent to a viewer
func NewWelcome(tick uint64, m *mesh.Mesh) Welcome {
	return Welcome{
		Lines:     m.LineIndices,
		Triangles: m.TriangleIndices,
		Frame:     NewFrame(tick, m),
	}
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode envelope without type: %w", ErrEmptyMessage)
	}
	if payload == nil {
		return nil, fmt.Errorf("encode %q envelope without payload: %w", t, ErrEmptyMessage)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", t, err)
	}

	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: %w", ErrEmptyMessage)
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}

	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("decode %q payload: %w", env.T, ErrEmptyMessage)
	}
	err := json.Unmarshal(env.P, &out)

	return out, err
}
