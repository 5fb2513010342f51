package core

import "time"

// Room owns its member set and its message log. Departure events only
// carry a connection id, so the room keeps a connection->name binding
// alongside the member set.
type Room struct {
	ID string

	members  map[string]struct{}
	bindings map[string]string
	log      []Message
	seq      int64
}

func newRoom(id string) *Room {
	return &Room{
		ID:       id,
		members:  make(map[string]struct{}),
		bindings: make(map[string]string),
	}
}

// MemberCount returns the number of currently joined connections.
// Counting bindings rather than names keeps the count honest when two
// connections share a display name.
func (r *Room) MemberCount() int {
	return len(r.bindings)
}

// History returns up to limit of the most recent log entries in post order.
func (r *Room) History(limit int) []Message {
	start := 0
	if limit >= 0 && len(r.log) > limit {
		start = len(r.log) - limit
	}
	out := make([]Message, len(r.log)-start)
	copy(out, r.log[start:])
	return out
}

// Join records the membership and binding for a connection and appends a
// system notice announcing the join. The caller snapshots history before
// calling Join so the notice is not part of the snapshot.
func (r *Room) Join(connID, user string) Message {
	r.members[user] = struct{}{}
	r.bindings[connID] = user
	return r.append(user, "joined the room", true)
}

// Post appends a user message to the log and returns it for broadcast.
func (r *Room) Post(from, text string) Message {
	return r.append(from, text, false)
}

// Remove resolves the binding for a connection and deletes the user from
// the room. An absent binding is a no-op. It returns the departure notice,
// whether a removal happened, and whether the room is now empty.
func (r *Room) Remove(connID string) (Message, bool, bool) {
	user, ok := r.bindings[connID]
	if !ok {
		return Message{}, false, len(r.bindings) == 0
	}
	delete(r.bindings, connID)
	// The name stays in the member set while another connection still
	// uses it.
	if !r.nameBound(user) {
		delete(r.members, user)
	}
	notice := r.append(user, "left the room", true)
	return notice, true, len(r.bindings) == 0
}

func (r *Room) nameBound(user string) bool {
	for _, name := range r.bindings {
		if name == user {
			return true
		}
	}
	return false
}

// Expire removes the message with the given id from the log if present.
// Absent ids are a silent no-op: the expiry timer may fire after the
// message or the whole room is already gone.
func (r *Room) Expire(id int64) (Message, bool) {
	for i, m := range r.log {
		if m.ID == id {
			r.log = append(r.log[:i], r.log[i+1:]...)
			return m, true
		}
	}
	return Message{}, false
}

func (r *Room) append(from, text string, system bool) Message {
	r.seq++
	msg := Message{
		ID:        r.seq,
		Room:      r.ID,
		From:      from,
		Text:      text,
		System:    system,
		CreatedAt: time.Now(),
	}
	r.log = append(r.log, msg)
	return msg
}
