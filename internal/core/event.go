package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomInfo tells the joining client which room it landed in.
	EventRoomInfo EventKind = iota
	// EventHistory delivers the join-time history snapshot.
	EventHistory
	// EventMessage notifies room members about a chat message.
	EventMessage
	// EventUserJoined notifies room members about a user joining.
	EventUserJoined
	// EventUserLeft notifies room members about a user leaving.
	EventUserLeft
	// EventMessageDeleted notifies room members that a message aged out.
	EventMessageDeleted
	// EventError notifies a single client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     string
	Message  Message
	Messages []Message // for EventHistory
	Error    *CoreError
}
