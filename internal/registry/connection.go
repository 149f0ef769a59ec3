/*
Package registry implements the connection registry (C4) and the room
registry plus Room (C5): the process-wide mappings from handle to live
connection and from room name to room record.

Grounded on hzchat/internal/app/chat/manager.go (Manager.rooms map guarded
by a single sync.RWMutex, with create/get/delete operations) for the
registry shape, and hzchat/internal/app/chat/room.go (Room.clients,
Room.mu, the register/unregister/broadcast select loop) for Room itself.
*/
package registry

import (
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// Connection is the server-side record of one live client (spec §3).
// Its handle, socket, and notification channel are set once at
// construction and never change; its room back-pointer is the only field
// mutated by someone other than its owning session loop (the room
// registry, under the room's lock).
type Connection struct {
	// Handle is the client's chosen, unique identifier.
	Handle string

	// CorrID is an opaque identifier used only for log correlation.
	CorrID string

	// Conn is the underlying client socket. Only the owning session loop
	// ever writes to it (I7); nothing in this package does.
	Conn net.Conn

	// Notify is the per-connection notification channel (C6): any
	// goroutine may send already-framed bytes, but only the owning
	// session loop ever receives from it.
	Notify chan []byte

	// Logger is a sub-logger carrying this connection's correlation ID.
	Logger zerolog.Logger

	roomMu sync.Mutex
	room   *Room

	notifyCloseOnce sync.Once
	shutdown        chan struct{}
	shutdownOnce    sync.Once
}

// NewConnection constructs a Connection ready to be handed to the
// connection registry.
func NewConnection(handle, corrID string, conn net.Conn, notifyCap int, logger zerolog.Logger) *Connection {
	return &Connection{
		Handle:   handle,
		CorrID:   corrID,
		Conn:     conn,
		Notify:   make(chan []byte, notifyCap),
		Logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// Shutdown returns the channel the owning session loop watches for a
// server-initiated shutdown (spec §4.9 step 2). Closing it never touches
// the socket or notify channel directly; the session loop itself drains
// any pending notification and tears down, preserving I7 (it alone ever
// writes or closes its socket).
func (c *Connection) Shutdown() <-chan struct{} {
	return c.shutdown
}

// TriggerShutdown signals the owning session loop to drain its pending
// notification and terminate. Safe to call more than once; callers
// should already have queued any farewell message via TryNotify first.
func (c *Connection) TriggerShutdown() {
	c.shutdownOnce.Do(func() {
		close(c.shutdown)
	})
}

// Room returns the room this connection currently belongs to, or nil.
func (c *Connection) Room() *Room {
	c.roomMu.Lock()
	defer c.roomMu.Unlock()
	return c.room
}

// setRoom sets the room back-pointer. Called only by Room.Join.
func (c *Connection) setRoom(r *Room) {
	c.roomMu.Lock()
	c.room = r
	c.roomMu.Unlock()
}

// clearRoomIfCurrent clears the room back-pointer iff it still refers to r
// (spec §4.5 Leave: "cleared iff it still referred to this room").
func (c *Connection) clearRoomIfCurrent(r *Room) {
	c.roomMu.Lock()
	if c.room == r {
		c.room = nil
	}
	c.roomMu.Unlock()
}

// CloseNotify closes the notification channel exactly once. Safe to call
// from the owning session loop's teardown even if a producer's TryNotify
// races it (TryNotify recovers from the resulting send-on-closed-channel
// panic).
func (c *Connection) CloseNotify() {
	c.notifyCloseOnce.Do(func() {
		close(c.Notify)
	})
}

// TryNotify attempts a non-blocking send on the notification channel. It
// reports whether the send succeeded; a full or closed channel is never
// treated as fatal by the caller, only logged.
func (c *Connection) TryNotify(line []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case c.Notify <- line:
		return true
	default:
		return false
	}
}
