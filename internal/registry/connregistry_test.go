package registry

import (
	"net"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnection(handle string) *Connection {
	client, server := net.Pipe()
	client.Close()
	return NewConnection(handle, "test", server, 4, zerolog.Nop())
}

func TestReserveRejectsDuplicateHandle(t *testing.T) {
	reg := NewConnRegistry(10)

	require.NoError(t, reg.Reserve(newTestConnection("alice")))
	assert.ErrorIs(t, reg.Reserve(newTestConnection("alice")), ErrHandleTaken)
}

func TestReserveRejectsOverCeiling(t *testing.T) {
	reg := NewConnRegistry(2)

	require.NoError(t, reg.Reserve(newTestConnection("alice")))
	require.NoError(t, reg.Reserve(newTestConnection("bob")))
	assert.ErrorIs(t, reg.Reserve(newTestConnection("carol")), ErrNoConnSlot)
}

func TestLookupAndRemove(t *testing.T) {
	reg := NewConnRegistry(10)
	conn := newTestConnection("alice")
	require.NoError(t, reg.Reserve(conn))

	found, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, conn, found)

	assert.True(t, reg.Remove("alice", conn))
	_, ok = reg.Lookup("alice")
	assert.False(t, ok)
}

func TestRemoveIsNoOpForMismatchedOrMissingHandle(t *testing.T) {
	reg := NewConnRegistry(10)
	conn := newTestConnection("alice")
	require.NoError(t, reg.Reserve(conn))

	other := newTestConnection("alice")
	assert.False(t, reg.Remove("alice", other))
	assert.False(t, reg.Remove("nobody", conn))

	found, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, conn, found)
}

func TestConcurrentReserveRemove(t *testing.T) {
	reg := NewConnRegistry(200)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			conn := newTestConnection(string(rune('a' + n%26)) + "-worker")
			if err := reg.Reserve(conn); err == nil {
				reg.Remove(conn.Handle, conn)
			}
		}(i)
	}
	wg.Wait()
}
