/*
Package errs provides the application's error taxonomy and a CustomError
type that carries a business code, a client-facing message, and a Kind used
to decide whether the owning session must be torn down.

These error codes identify specific conditions both internally and in the
status lines sent back to clients.
*/
package errs

// 1xxx: handle/room validation
const (
	// ErrInvalidHandle indicates the proposed handle failed validation.
	ErrInvalidHandle = 1001

	// ErrInvalidRoomName indicates the requested room name failed validation.
	ErrInvalidRoomName = 1002

	// ErrMissingArgs indicates a command was missing one or more required arguments.
	ErrMissingArgs = 1003

	// ErrUnknownCommand indicates the client sent an unrecognized verb.
	ErrUnknownCommand = 1004

	// ErrInvalidFileSize indicates /sendfile's size argument was non-positive or oversize.
	ErrInvalidFileSize = 1005
)

// 2xxx: capacity limits
const (
	// ErrHandleTaken indicates the requested handle is already in use.
	ErrHandleTaken = 2001

	// ErrServerFull indicates the connection registry has reached its ceiling.
	ErrServerFull = 2002

	// ErrRoomSlotsFull indicates the room registry has reached its ceiling.
	ErrRoomSlotsFull = 2003

	// ErrRoomFull indicates the target room has reached its member capacity.
	ErrRoomFull = 2004
)

// 3xxx: lookup failures
const (
	// ErrUserNotOnline indicates a whisper or file target is not currently connected.
	ErrUserNotOnline = 3001

	// ErrNotInRoom indicates a /broadcast was attempted outside of any room.
	ErrNotInRoom = 3002
)

// 4xxx: transport failures
const (
	// ErrShortRead indicates a /sendfile payload ended before the declared size was read.
	ErrShortRead = 4001
)

// 5xxx: resource failures
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrOutOfMemory indicates a payload allocation failed.
	ErrOutOfMemory = 5001
)
