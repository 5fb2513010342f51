package core

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the room engine knobs.
const (
	DefaultRoomCapacity = 3
	DefaultMessageTTL   = 60 * time.Second
	DefaultHistoryLimit = 10
)

// ErrHubStopped is returned by Snapshot when the hub loop is not running.
var ErrHubStopped = errors.New("hub stopped")

// Options tune the room engine. Zero values fall back to defaults.
type Options struct {
	RoomCapacity int
	MessageTTL   time.Duration
	HistoryLimit int
}

func (o *Options) withDefaults() {
	if o.RoomCapacity <= 0 {
		o.RoomCapacity = DefaultRoomCapacity
	}
	if o.MessageTTL <= 0 {
		o.MessageTTL = DefaultMessageTTL
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
}

// Hub is the single actor that owns all room state. Every mutation,
// including timer-driven expiry, arrives as a command on one channel
// and runs to completion before the next, so rooms need no locks.
type Hub struct {
	opts     Options
	registry *Registry
	presence *Presence
	expiry   *Scheduler

	clients    map[string]*Client
	commands   chan Command
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}

	log zerolog.Logger
}

// NewHub constructs a hub. A nil logger disables logging.
func NewHub(opts Options, logger *zerolog.Logger) *Hub {
	opts.withDefaults()
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	h := &Hub{
		opts:       opts,
		registry:   NewRegistry(),
		presence:   NewPresence(),
		clients:    make(map[string]*Client),
		commands:   make(chan Command, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		log:        *logger,
	}
	h.expiry = NewScheduler(opts.MessageTTL, h.fireExpiry)
	return h
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.quit:
	}
}

// UnregisterClient reconciles room state for a closed connection.
// It is equivalent to a leave followed by forgetting the client.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Dispatch hands a command to the hub loop.
func (h *Hub) Dispatch(cmd Command) {
	select {
	case h.commands <- cmd:
	case <-h.quit:
	}
}

// Snapshot returns a point-in-time view of live rooms.
func (h *Hub) Snapshot(ctx context.Context) ([]RoomSnapshot, error) {
	reply := make(chan []RoomSnapshot, 1)
	select {
	case h.commands <- Command{Kind: CommandSnapshot, Reply: reply}:
	case <-h.quit:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case snap := <-reply:
		return snap, nil
	case <-h.quit:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes commands until the context is canceled. It must be
// called exactly once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.quit)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Debug().Str("conn_id", c.ID).Msg("client registered")
		case c := <-h.unregister:
			h.handleLeave(c)
			delete(h.clients, c.ID)
			h.log.Debug().Str("conn_id", c.ID).Msg("client unregistered")
		case cmd := <-h.commands:
			h.handle(cmd)
		}
	}
}

func (h *Hub) handle(cmd Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(cmd.Client, cmd.User)
	case CommandPost:
		h.handlePost(cmd.Client, cmd.Text)
	case CommandLeave:
		h.handleLeave(cmd.Client)
	case CommandExpire:
		h.handleExpire(cmd.Room, cmd.MessageID)
	case CommandSnapshot:
		cmd.Reply <- h.snapshot()
	}
}

func (h *Hub) handleJoin(c *Client, user string) {
	if _, joined := h.presence.Room(c.ID); joined {
		h.sendEvent(c, &Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, "connection is already in a room")})
		return
	}

	room := h.registry.FindOrCreateAvailable(h.opts.RoomCapacity)
	history := room.History(h.opts.HistoryLimit)
	notice := room.Join(c.ID, user)
	c.Name = user
	h.presence.Set(c.ID, room.ID)

	h.sendEvent(c, &Event{Kind: EventRoomInfo, Room: room.ID})
	h.sendEvent(c, &Event{Kind: EventHistory, Room: room.ID, Messages: history})
	h.broadcast(room, &Event{Kind: EventUserJoined, Room: room.ID, User: user, Message: notice})
	h.expiry.Schedule(room.ID, notice.ID)

	h.log.Info().Str("conn_id", c.ID).Str("user", user).Str("room", room.ID).
		Int("members", room.MemberCount()).Msg("user joined")
}

func (h *Hub) handlePost(c *Client, text string) {
	roomID, joined := h.presence.Room(c.ID)
	if !joined {
		h.sendEvent(c, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join a room before sending messages")})
		return
	}
	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}

	msg := room.Post(c.Name, text)
	h.broadcast(room, &Event{Kind: EventMessage, Room: room.ID, User: c.Name, Message: msg})
	h.expiry.Schedule(room.ID, msg.ID)
}

func (h *Hub) handleLeave(c *Client) {
	roomID, joined := h.presence.Room(c.ID)
	if !joined {
		return
	}
	h.presence.Clear(c.ID)

	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}

	notice, removed, empty := room.Remove(c.ID)
	if removed {
		h.broadcast(room, &Event{Kind: EventUserLeft, Room: room.ID, User: notice.From, Message: notice})
		h.expiry.Schedule(room.ID, notice.ID)
		h.log.Info().Str("conn_id", c.ID).Str("user", notice.From).Str("room", room.ID).Msg("user left")
	}
	if empty && h.registry.DestroyIfEmpty(room.ID) {
		h.log.Info().Str("room", room.ID).Msg("room destroyed")
	}
}

func (h *Hub) handleExpire(roomID string, messageID int64) {
	room, ok := h.registry.Get(roomID)
	if !ok {
		return
	}
	msg, ok := room.Expire(messageID)
	if !ok {
		return
	}
	h.broadcast(room, &Event{Kind: EventMessageDeleted, Room: room.ID, Message: msg})
	h.log.Debug().Str("room", room.ID).Int64("message_id", msg.ID).Msg("message expired")
}

func (h *Hub) snapshot() []RoomSnapshot {
	rooms := h.registry.Rooms()
	out := make([]RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		members := make([]string, 0, len(room.members))
		for name := range room.members {
			members = append(members, name)
		}
		sort.Strings(members)
		out = append(out, RoomSnapshot{
			ID:       room.ID,
			Members:  members,
			Messages: len(room.log),
		})
	}
	return out
}

// fireExpiry runs on a timer goroutine and feeds the hub loop, keeping
// expiry serialized with every other mutation.
func (h *Hub) fireExpiry(roomID string, messageID int64) {
	select {
	case h.commands <- Command{Kind: CommandExpire, Room: roomID, MessageID: messageID}:
	case <-h.quit:
	}
}

func (h *Hub) broadcast(room *Room, event *Event) {
	for connID := range room.bindings {
		client, ok := h.clients[connID]
		if !ok {
			continue
		}
		h.sendEvent(client, event)
	}
}

func (h *Hub) sendEvent(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
