package core

import "time"

// Message is a single entry in a room's log.
type Message struct {
	// ID is a per-room monotonic sequence number assigned at append time.
	// It is the key used for expiry, so two messages sharing a millisecond
	// timestamp can never delete each other.
	ID        int64
	Room      string
	From      string
	Text      string
	System    bool
	CreatedAt time.Time
}
