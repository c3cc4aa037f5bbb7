// Package bridge defines the wire protocol between the engine process and
// the UI bridge. Requests arrive as newline-delimited JSON on stdin;
// results and feed events leave the same way on stdout.
package bridge

import "github.com/mapforge/engine/internal/events"

// Message type constants matching the bridge protocol.
const (
	TypeResult = "result"
	TypeEvent  = "event"
)

// Command constants the engine emits without a request.
const (
	CommandReady = ":ENGINE:READY:"
)

// Request is one command line from the UI bridge.
type Request struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Message is one line written back to the UI bridge. Type is "result"
// for command replies and "event" for feed entries.
type Message struct {
	Type    string        `json:"type"`
	Command string        `json:"command,omitempty"`
	Result  any           `json:"result,omitempty"`
	Error   string        `json:"error,omitempty"`
	Event   *events.Event `json:"event,omitempty"`
}
