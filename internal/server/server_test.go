package server_test

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hzchat/internal/server"
)

func dial(t *testing.T, addr net.Addr) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	conn.SetDeadline(time.Now().Add(3 * time.Second))
	return conn, bufio.NewReader(conn)
}

func TestHandshakeAcceptsValidHandleAndRejectsDuplicate(t *testing.T) {
	srv, err := server.New(0, zerolog.Nop())
	require.NoError(t, err)
	go srv.Run()
	defer srv.Stop()

	alice, aliceR := dial(t, srv.Addr())
	_, err = alice.Write([]byte("Alice\n"))
	require.NoError(t, err)
	line, err := aliceR.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[OK] Username accepted.\n", line)

	dup, dupR := dial(t, srv.Addr())
	_, err = dup.Write([]byte("Alice\n"))
	require.NoError(t, err)
	line, err = dupR.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[ERROR] Username already taken.\n", line)
}

func TestHandshakeRepromptsOnInvalidHandle(t *testing.T) {
	srv, err := server.New(0, zerolog.Nop())
	require.NoError(t, err)
	go srv.Run()
	defer srv.Stop()

	conn, reader := dial(t, srv.Addr())

	_, err = conn.Write([]byte("!!!\n"))
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[ERROR] Invalid handle. Use 1-16 alphanumeric characters.\n", line)

	_, err = conn.Write([]byte("Bob\n"))
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[OK] Username accepted.\n", line)
}

func TestStopNotifiesConnectedClientsAndClosesSockets(t *testing.T) {
	srv, err := server.New(0, zerolog.Nop())
	require.NoError(t, err)
	go srv.Run()

	conn, reader := dial(t, srv.Addr())
	_, err = conn.Write([]byte("Alice\n"))
	require.NoError(t, err)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.Stop()
		close(done)
	}()

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "[SERVER] shutting down. Goodbye.\n", line)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
