package core

import "strconv"

// Registry owns the mapping of room id to room. Rooms are created lazily
// by the first-fit assignment and destroyed the moment they become empty.
// All access happens on the hub goroutine.
type Registry struct {
	rooms   map[string]*Room
	order   []string
	created int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// FindOrCreateAvailable scans rooms in creation order and returns the
// first with spare capacity. If none qualifies it creates a new room.
// First-fit means earlier rooms fill up before later ones are used.
func (g *Registry) FindOrCreateAvailable(capacity int) *Room {
	for _, id := range g.order {
		room, ok := g.rooms[id]
		if !ok {
			continue
		}
		if room.MemberCount() < capacity {
			return room
		}
	}

	g.created++
	room := newRoom("room-" + strconv.Itoa(g.created))
	g.rooms[room.ID] = room
	g.order = append(g.order, room.ID)
	return room
}

// Get looks up a room by id. A miss means never-created or already
// destroyed; callers treat it as a no-op.
func (g *Registry) Get(id string) (*Room, bool) {
	room, ok := g.rooms[id]
	return room, ok
}

// DestroyIfEmpty removes the room iff its member count is zero.
// Room ids are never reused after destruction.
func (g *Registry) DestroyIfEmpty(id string) bool {
	room, ok := g.rooms[id]
	if !ok || room.MemberCount() > 0 {
		return false
	}
	delete(g.rooms, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	return len(g.rooms)
}

// Rooms returns live rooms in creation order.
func (g *Registry) Rooms() []*Room {
	out := make([]*Room, 0, len(g.rooms))
	for _, id := range g.order {
		if room, ok := g.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out
}
