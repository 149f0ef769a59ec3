package registry

import (
	"errors"
	"sync"
)

// Sentinel errors returned by ConnRegistry.Reserve.
var (
	ErrHandleTaken = errors.New("handle already in use")
	ErrNoConnSlot  = errors.New("no connection slots available")
)

// ConnRegistry is the process-wide handle-to-connection mapping (spec
// §4.2), bounded by a ceiling on the number of simultaneously live
// connections.
//
// Grounded on hzchat/internal/app/chat/manager.go's Manager.rooms map: a
// single mutex-guarded map with register/lookup/unregister operations,
// here keyed by handle instead of room ID.
type ConnRegistry struct {
	mu       sync.Mutex
	byHandle map[string]*Connection
	ceiling  int
}

// NewConnRegistry constructs an empty ConnRegistry bounded by ceiling.
func NewConnRegistry(ceiling int) *ConnRegistry {
	return &ConnRegistry{
		byHandle: make(map[string]*Connection),
		ceiling:  ceiling,
	}
}

// Reserve registers conn under its handle. It fails with ErrHandleTaken if
// the handle is already in use, or ErrNoConnSlot if the registry is
// already at its connection ceiling.
func (r *ConnRegistry) Reserve(conn *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byHandle[conn.Handle]; taken {
		return ErrHandleTaken
	}
	if len(r.byHandle) >= r.ceiling {
		return ErrNoConnSlot
	}

	r.byHandle[conn.Handle] = conn
	return nil
}

// Lookup returns the connection registered under handle, if any.
func (r *ConnRegistry) Lookup(handle string) (*Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.byHandle[handle]
	return conn, ok
}

// Remove releases handle's slot. It is a no-op (returning false) if handle
// is not registered, or if it is registered to a different connection than
// conn — generalizing the null-deref edge case flagged in spec.md §9 into
// Go's checked map delete.
func (r *ConnRegistry) Remove(handle string, conn *Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byHandle[handle]
	if !ok || current != conn {
		return false
	}
	delete(r.byHandle, handle)
	return true
}

// Len reports the current number of live connections.
func (r *ConnRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byHandle)
}

// All returns a snapshot of every live connection. Used only by the
// server's shutdown path to close every socket; not safe to call from
// hot paths since it copies the full map.
func (r *ConnRegistry) All() []*Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := make([]*Connection, 0, len(r.byHandle))
	for _, conn := range r.byHandle {
		conns = append(conns, conn)
	}
	return conns
}
