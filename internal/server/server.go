/*
Package server implements the acceptor and lifecycle (C9): the listening
socket, the handshake that turns a raw connection into a registered
Connection, and the startup/shutdown sequence tying together the
registries, the upload queue, and its worker pool.

Grounded on hzchat/cmd/main.go's signal-driven startup/ordered-shutdown
structure, generalized from an http.Server to a raw net.Listener accept
loop, and on hzchat/internal/app/chat/manager.go's room lifecycle
ownership for how the server owns and tears down its registries.
*/
package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"hzchat/internal/chat"
	"hzchat/internal/configs"
	"hzchat/internal/pkg/corr"
	"hzchat/internal/pkg/errs"
	"hzchat/internal/pkg/validate"
	"hzchat/internal/queue"
	"hzchat/internal/registry"
	"hzchat/internal/upload"
)

// Server owns the listening socket and every long-lived component the
// session loops and upload workers depend on.
type Server struct {
	listener net.Listener
	connReg  *registry.ConnRegistry
	roomReg  *registry.RoomRegistry
	queue    *queue.FileQueue
	pool     *upload.Pool
	logger   zerolog.Logger

	stopping chan struct{}
	stopOnce sync.Once

	sessionsWG sync.WaitGroup
}

// New binds the listening socket and constructs the registries, queue,
// and worker pool, but does not yet start accepting connections.
func New(port int, logger zerolog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}

	connReg := registry.NewConnRegistry(configs.ConnectionCeiling)
	roomReg := registry.NewRoomRegistry(configs.RoomCeiling)
	fileQueue := queue.New(configs.UploadQueueCapacity)
	pool := upload.NewPool(fileQueue, connReg, logger.With().Str("component", "upload").Logger())

	return &Server{
		listener: listener,
		connReg:  connReg,
		roomReg:  roomReg,
		queue:    fileQueue,
		pool:     pool,
		logger:   logger,
		stopping: make(chan struct{}),
	}, nil
}

// Addr returns the listener's bound address, useful for tests that bind
// to port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run starts the upload worker pool and the accept loop. It blocks until
// Stop closes the listener, at which point it returns.
func (s *Server) Run() {
	s.pool.Start(configs.UploadWorkerCount)
	s.logger.Info().Str("addr", s.listener.Addr().String()).Msg("server listening")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopping:
				return
			default:
				s.logger.Warn().Err(err).Msg("accept error, retrying")
				continue
			}
		}

		ready := make(chan struct{})
		go s.handleAccepted(conn, ready)
		<-ready
	}
}

// handleAccepted performs the handshake and, on success, spawns the
// session loop. ready is closed once local setup (handshake outcome and,
// on success, session registration) has completed — per spec §4.9, the
// acceptor waits for this before finalizing the next connection's
// handshake, so that a freshly spawned session's first log lines already
// carry its identity.
func (s *Server) handleAccepted(conn net.Conn, ready chan<- struct{}) {
	record, err := s.handshake(conn)
	if err != nil {
		conn.Close()
		close(ready)
		return
	}

	s.sessionsWG.Add(1)
	close(ready)

	go func() {
		defer s.sessionsWG.Done()
		chat.NewSession(record, s.connReg, s.roomReg, s.queue).Run()
	}()
}

// handshake reads the client's proposed handle, validates it, and
// reserves it in the connection registry, reprompting on the same socket
// on rejection until the client is accepted or the socket fails.
func (s *Server) handshake(conn net.Conn) (*registry.Connection, error) {
	reader := bufio.NewReaderSize(conn, configs.MaxHandshakeLineBytes)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		handle := strings.TrimRight(line, "\r\n")
		if !validate.Handle(handle) {
			if _, werr := conn.Write(lineBytes(errs.NewError(errs.ErrInvalidHandle).Message)); werr != nil {
				return nil, werr
			}
			continue
		}

		corrID := corr.New()
		connLogger := s.logger.With().Str("handle", handle).Str("conn_id", corrID).Logger()
		record := registry.NewConnection(handle, corrID, conn, configs.NotifyChannelCapacity, connLogger)

		if err := s.connReg.Reserve(record); err != nil {
			code := errs.ErrHandleTaken
			if errors.Is(err, registry.ErrNoConnSlot) {
				code = errs.ErrServerFull
			}
			if _, werr := conn.Write(lineBytes(errs.NewError(code).Message)); werr != nil {
				return nil, werr
			}
			continue
		}

		if _, werr := conn.Write([]byte("[OK] Username accepted.\n")); werr != nil {
			s.connReg.Remove(handle, record)
			return nil, werr
		}

		connLogger.Info().Msg("client accepted")
		return record, nil
	}
}

// lineBytes appends the wire protocol's trailing newline to a status line.
func lineBytes(line string) []byte {
	return []byte(line + "\n")
}

// Stop runs the shutdown sequence from spec §4.9: drain the worker pool
// with one sentinel per worker, queue the farewell line and signal every
// live connection's own session loop to drain it and tear down, then join
// the workers and sessions. The farewell is never written here directly;
// queuing it via TryNotify and letting the owning session loop flush and
// write it before closing its own socket is what actually guarantees
// delivery — closing the socket from this goroutine instead would race
// the session loop's next write to it. Idempotent; closing the listener
// also unblocks Run's Accept call.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopping)
		s.listener.Close()

		for i := 0; i < configs.UploadWorkerCount; i++ {
			s.queue.Sentinel()
		}

		for _, conn := range s.connReg.All() {
			conn.TryNotify([]byte("[SERVER] shutting down. Goodbye.\n"))
			conn.TriggerShutdown()
		}

		s.pool.Wait()
		s.sessionsWG.Wait()

		s.logger.Info().Msg("server shutdown complete")
	})
}
