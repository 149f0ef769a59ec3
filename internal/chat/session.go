package chat

import (
	"sync"

	"hzchat/internal/pkg/errs"
	"hzchat/internal/queue"
	"hzchat/internal/registry"
)

// Session drives one client's C7 event loop: a single select statement
// multiplexing parsed inbound commands against the connection's
// notification channel, making this goroutine the sole writer of the
// client's socket (I7).
type Session struct {
	conn    *registry.Connection
	connReg *registry.ConnRegistry
	roomReg *registry.RoomRegistry
	queue   *queue.FileQueue

	done     chan struct{}
	doneOnce sync.Once
}

// NewSession wires a freshly accepted connection to the registries and
// upload queue it needs to serve commands.
func NewSession(conn *registry.Connection, connReg *registry.ConnRegistry, roomReg *registry.RoomRegistry, fq *queue.FileQueue) *Session {
	return &Session{
		conn:    conn,
		connReg: connReg,
		roomReg: roomReg,
		queue:   fq,
		done:    make(chan struct{}),
	}
}

// Run executes the session until it transitions to DRAINING, then tears
// down. It blocks for the session's full lifetime, so callers run it in
// its own goroutine.
func (s *Session) Run() {
	events := make(chan command)
	go readCommands(s.conn.Conn, events, s.done)

	for {
		select {
		case cmd := <-events:
			switch {
			case cmd.sockErr != nil:
				s.flushNotify()
				s.teardown()
				return

			case cmd.shortRead:
				s.writeLine(errs.NewError(errs.ErrShortRead).Message)
				s.teardown()
				return

			case s.dispatch(cmd):
				s.teardown()
				return
			}

		case buf := <-s.conn.Notify:
			if _, err := s.conn.Conn.Write(buf); err != nil {
				s.conn.Logger.Warn().Err(err).Msg("write to client socket failed")
				s.teardown()
				return
			}

		case <-s.conn.Shutdown():
			// Drain whatever is already buffered (e.g. the shutdown
			// farewell queued by Server.Stop just before this fired) so it
			// reaches the client before teardown closes the socket.
			s.flushNotify()
			s.teardown()
			return
		}
	}
}

// teardown performs the DRAINING sequence from spec §4.7, in order: stop
// reading (closing done unblocks the reader goroutine), leave any joined
// room, close the notification channel, close the socket, and remove
// this connection from the registry.
func (s *Session) teardown() {
	s.doneOnce.Do(func() { close(s.done) })

	if room := s.conn.Room(); room != nil {
		room.Leave(s.conn)
	}

	s.conn.CloseNotify()
	s.conn.Conn.Close()
	if !s.connReg.Remove(s.conn.Handle, s.conn) {
		s.conn.Logger.Warn().Msg("handle not found in connection registry on removal")
	}

	s.conn.Logger.Info().Msg("session ended")
}

// flushNotify writes out whatever is already buffered in the notify
// channel without blocking. Called just before teardown on a socket
// error/EOF so a message queued moments earlier (e.g. a shutdown
// farewell) is still delivered even though the connection is closing.
func (s *Session) flushNotify() {
	for {
		select {
		case buf := <-s.conn.Notify:
			s.conn.Conn.Write(buf)
		default:
			return
		}
	}
}

// writeLine writes a single reply line, appending the trailing newline
// the wire protocol requires.
func (s *Session) writeLine(line string) {
	if _, err := s.conn.Conn.Write([]byte(line + "\n")); err != nil {
		s.conn.Logger.Warn().Err(err).Msg("write to client socket failed")
	}
}
