package core

// CommandKind describes what the hub is asked to do.
type CommandKind int

const (
	// CommandJoin places the client into a room with spare capacity.
	CommandJoin CommandKind = iota
	// CommandPost delivers a chat message to the client's current room.
	CommandPost
	// CommandLeave removes the client from its current room.
	CommandLeave
	// CommandExpire removes an aged-out message from a room's log.
	CommandExpire
	// CommandSnapshot requests a read-only view of live rooms.
	CommandSnapshot
)

// Command is a single unit of work for the hub loop.
type Command struct {
	Kind   CommandKind
	Client *Client

	// Join.
	User string

	// Post.
	Text string

	// Expire.
	Room      string
	MessageID int64

	// Snapshot.
	Reply chan []RoomSnapshot
}

// RoomSnapshot is a point-in-time view of one room for the API surface.
type RoomSnapshot struct {
	ID       string
	Members  []string
	Messages int
}
