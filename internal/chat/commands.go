package chat

import (
	"fmt"
	"strconv"
	"strings"

	"hzchat/internal/configs"
	"hzchat/internal/pkg/corr"
	"hzchat/internal/pkg/errs"
	"hzchat/internal/pkg/validate"
	"hzchat/internal/queue"
)

// dispatch executes one parsed command and reports whether the session
// should transition to DRAINING.
func (s *Session) dispatch(cmd command) bool {
	switch cmd.verb {
	case "/exit":
		s.writeLine("[INFO] Server is shutting down your connection.")
		return true

	case "/whisper":
		s.handleWhisper(cmd.rest)
	case "/join":
		s.handleJoin(cmd.rest)
	case "/leave":
		s.handleLeave()
	case "/broadcast":
		s.handleBroadcast(cmd.rest)
	case "/sendfile":
		s.handleSendfile(cmd.rest, cmd.payload)
	default:
		s.writeLine(errs.NewError(errs.ErrUnknownCommand).Message)
	}

	return false
}

func (s *Session) handleWhisper(rest string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		s.writeLine(errs.NewError(errs.ErrMissingArgs, "/whisper <user> <msg>").Message)
		return
	}

	targetHandle, msg := parts[0], parts[1]

	target, ok := s.connReg.Lookup(targetHandle)
	if !ok {
		s.writeLine(errs.NewError(errs.ErrUserNotOnline, targetHandle).Message)
		return
	}

	line := []byte(fmt.Sprintf("[%s] %s\n", s.conn.Handle, msg))
	if !target.TryNotify(line) {
		s.conn.Logger.Warn().Str("target", targetHandle).Msg("whisper dropped, target notify channel full")
	}
}

func (s *Session) handleJoin(rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 || !validate.RoomName(fields[0]) {
		s.writeLine(errs.NewError(errs.ErrInvalidRoomName).Message)
		return
	}
	roomName := fields[0]

	if current := s.conn.Room(); current != nil {
		current.Leave(s.conn)
	}

	room, err := s.roomReg.FindOrCreate(roomName, s.conn.Handle, configs.RoomCapacity)
	if err != nil {
		s.writeLine(errs.NewError(errs.ErrRoomSlotsFull).Message)
		return
	}

	if err := room.Join(s.conn); err != nil {
		s.writeLine(errs.NewError(errs.ErrRoomFull).Message)
		return
	}

	s.writeLine(fmt.Sprintf("[OK] User %q joined the room: %s", s.conn.Handle, roomName))
}

func (s *Session) handleLeave() {
	room := s.conn.Room()
	if room == nil {
		s.writeLine(fmt.Sprintf("[INFO] User %q is not in any room", s.conn.Handle))
		return
	}

	name := room.Name
	room.Leave(s.conn)
	s.writeLine(fmt.Sprintf("[INFO] User %q left the room: %s", s.conn.Handle, name))
}

func (s *Session) handleBroadcast(rest string) {
	if rest == "" {
		s.writeLine(errs.NewError(errs.ErrMissingArgs, "/broadcast <msg>").Message)
		return
	}

	room := s.conn.Room()
	if room == nil {
		s.writeLine(errs.NewError(errs.ErrNotInRoom).Message)
		return
	}

	line := []byte(fmt.Sprintf("[%s] %s\n", s.conn.Handle, rest))
	room.Broadcast(line)
}

func (s *Session) handleSendfile(rest string, payload []byte) {
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		s.writeLine(errs.NewError(errs.ErrMissingArgs, "/sendfile <filename> <user> <size>").Message)
		return
	}

	filename, target, sizeStr := fields[0], fields[1], fields[2]

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > configs.MaxFileSize {
		s.writeLine(errs.NewError(errs.ErrInvalidFileSize).Message)
		return
	}

	if len(payload) != size {
		s.writeLine(errs.NewError(errs.ErrShortRead).Message)
		return
	}

	if s.queue.IsFull() {
		s.writeLine(fmt.Sprintf("[INFO] Upload queue is full. Your file '%s' will be queued.", filename))
	}

	itemID := corr.New()
	s.queue.Enqueue(queue.FileItem{
		ID:       itemID,
		Filename: filename,
		Sender:   s.conn.Handle,
		Target:   target,
		Payload:  payload,
	})
	s.conn.Logger.Info().Str("file_id", itemID).Str("filename", filename).Str("target", target).Msg("file queued")

	s.writeLine(fmt.Sprintf("[OK] File '%s' queued for sending to %s. Size: %d bytes.", filename, target, size))
}
