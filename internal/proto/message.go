package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin  = "join"
	InboundTypeLeave = "leave"
	InboundTypeMsg   = "msg"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// JoinData carries the display name the client wants to use.
// The server picks the room; clients never address rooms directly.
type JoinData struct {
	User string `json:"user"`
}

// MsgData is a chat message from the client to its current room.
type MsgData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventRoomInfo tells the joining client which room it was placed in.
type EventRoomInfo struct {
	Room string `json:"room"`
}

// EventMessage is one chat or system message as seen on the wire.
type EventMessage struct {
	ID     int64  `json:"id"`
	Room   string `json:"room"`
	User   string `json:"user"`
	Text   string `json:"text"`
	TS     int64  `json:"ts"`
	System bool   `json:"system,omitempty"`
}

// EventHistory delivers the join-time snapshot of recent messages.
type EventHistory struct {
	Room     string         `json:"room"`
	Messages []EventMessage `json:"messages"`
}

// EventUserJoined notifies that a user joined the room.
type EventUserJoined struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// EventUserLeft notifies that a user left the room.
type EventUserLeft struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// EventMessageDeleted notifies that a message aged out of the room log.
// TS mirrors the original message timestamp for clients that key their
// views by time.
type EventMessageDeleted struct {
	Room string `json:"room"`
	ID   int64  `json:"id"`
	TS   int64  `json:"ts"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
