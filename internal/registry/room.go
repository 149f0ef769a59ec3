package registry

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// Sentinel errors returned by room operations. Callers at the command
// dispatch layer translate these into client-facing error replies.
var (
	ErrRoomFull   = errors.New("room is at capacity")
	ErrNoRoomSlot = errors.New("no room slots available")
)

// Room is a named group of connections (spec §4.4). Membership is bounded
// by Capacity; the room destroys itself (removes itself from its registry)
// the moment its last member leaves (invariant I4).
//
// Grounded on hzchat/internal/app/chat/room.go's Room type, with the
// broadcast/register/unregister goroutine-and-channel loop replaced by a
// plain RWMutex-guarded map: this server has no per-room goroutine, so the
// teacher's channel-based serialization has no actor to serialize against.
type Room struct {
	Name     string
	Capacity int

	registry *RoomRegistry

	mu      sync.RWMutex
	members map[string]*Connection
}

func newRoom(name string, capacity int, reg *RoomRegistry) *Room {
	return &Room{
		Name:     name,
		Capacity: capacity,
		registry: reg,
		members:  make(map[string]*Connection),
	}
}

// Join adds conn to the room's member set and sets conn's room
// back-pointer. It fails with ErrRoomFull if the room is already at
// Capacity and conn is not already a member.
func (r *Room) Join(conn *Connection) error {
	r.mu.Lock()
	if _, already := r.members[conn.Handle]; !already && len(r.members) >= r.Capacity {
		r.mu.Unlock()
		return ErrRoomFull
	}
	r.members[conn.Handle] = conn
	conn.setRoom(r)
	r.mu.Unlock()

	return nil
}

// Leave removes conn from the room's member set, clears its room
// back-pointer (iff it still points at this room), and destroys the room
// in its registry if that leaves it empty.
func (r *Room) Leave(conn *Connection) {
	r.mu.Lock()
	delete(r.members, conn.Handle)
	empty := len(r.members) == 0
	conn.clearRoomIfCurrent(r)
	r.mu.Unlock()

	if empty && r.registry != nil {
		r.registry.destroy(r.Name, r)
	}
}

// Broadcast fans a line out to every current member, including the sender
// (an Open Question in spec.md §9, resolved to preserve the original
// behavior rather than "fix" it). Delivery to any one member is
// best-effort: a full notify channel is logged and dropped, never
// propagated as an error to the caller.
func (r *Room) Broadcast(line []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for handle, member := range r.members {
		if !member.TryNotify(line) {
			log.Warn().Str("room", r.Name).Str("handle", handle).Msg("notify channel full, dropping broadcast line")
		}
	}
}

// Members returns the current member handles. Used only for diagnostics
// and tests; callers must not assume the result stays valid.
func (r *Room) Members() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles := make([]string, 0, len(r.members))
	for h := range r.members {
		handles = append(handles, h)
	}
	return handles
}

// Len reports the current member count.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// RoomRegistry is the process-wide name-to-room mapping (spec §4.4),
// bounded by a ceiling on the number of simultaneously live rooms.
//
// Grounded on hzchat/internal/app/chat/manager.go's Manager, whose
// create-if-absent room lookup is generalized here into FindOrCreate.
type RoomRegistry struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	ceiling int
}

// NewRoomRegistry constructs an empty RoomRegistry bounded by ceiling.
func NewRoomRegistry(ceiling int) *RoomRegistry {
	return &RoomRegistry{
		rooms:   make(map[string]*Room),
		ceiling: ceiling,
	}
}

// FindOrCreate returns the named room, creating it with the given member
// capacity if it does not already exist. It fails with ErrNoRoomSlot if
// the registry is already at its room ceiling and name is new. creator is
// the handle of the client whose /join caused the lookup, logged on the
// creation path only (spec §4.5: "logging of creation references the
// creator's identity").
func (rr *RoomRegistry) FindOrCreate(name, creator string, capacity int) (*Room, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if room, ok := rr.rooms[name]; ok {
		return room, nil
	}

	if len(rr.rooms) >= rr.ceiling {
		return nil, ErrNoRoomSlot
	}

	room := newRoom(name, capacity, rr)
	rr.rooms[name] = room

	log.Info().Str("room", name).Str("creator", creator).Msg("room created")

	return room, nil
}

// Get returns the named room without creating it.
func (rr *RoomRegistry) Get(name string) (*Room, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	room, ok := rr.rooms[name]
	return room, ok
}

// Len reports the current number of live rooms.
func (rr *RoomRegistry) Len() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.rooms)
}

// destroy removes name from the registry iff it still maps to room (a stale
// destroy racing a fresh FindOrCreate must not evict the new room).
func (rr *RoomRegistry) destroy(name string, room *Room) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if current, ok := rr.rooms[name]; ok && current == room {
		delete(rr.rooms, name)
	}
}
