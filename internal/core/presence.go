package core

// Presence maps each connection id to the room it is currently joined to.
// It is the sole source of truth for disconnect reconciliation: the
// transport's disconnect only carries a connection id, and nothing ever
// re-derives membership by scanning rooms.
type Presence struct {
	byConn map[string]string
}

// NewPresence returns an empty tracker.
func NewPresence() *Presence {
	return &Presence{byConn: make(map[string]string)}
}

// Set records the room a connection joined.
func (p *Presence) Set(connID, roomID string) {
	p.byConn[connID] = roomID
}

// Room returns the room a connection is in, if any.
func (p *Presence) Room(connID string) (string, bool) {
	roomID, ok := p.byConn[connID]
	return roomID, ok
}

// Clear drops the record for a connection. Unknown ids are a no-op.
func (p *Presence) Clear(connID string) {
	delete(p.byConn, connID)
}
