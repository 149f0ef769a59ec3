/*
Package errs provides the application's error taxonomy and a CustomError
type that carries a business code, a client-facing message, and a Kind used
to decide whether the owning session must be torn down.

This file maps every error code to its CustomError template.
*/
package errs

// errorMap stores the CustomError template for every application error code.
// Message already carries its wire status prefix ("[ERROR] ", "[WARN] ",
// ...) so callers can send it to the client verbatim.
var errorMap = map[int]CustomError{
	ErrInvalidHandle:   {Code: ErrInvalidHandle, Message: "[ERROR] Invalid handle. Use 1-16 alphanumeric characters.", Kind: Validation},
	ErrInvalidRoomName: {Code: ErrInvalidRoomName, Message: "[ERROR] Invalid room name.", Kind: Validation},
	ErrMissingArgs:     {Code: ErrMissingArgs, Message: "[ERROR] Usage: %s", Kind: Validation},
	ErrUnknownCommand:  {Code: ErrUnknownCommand, Message: "[ERROR] Unknown command.", Kind: Validation},
	ErrInvalidFileSize: {Code: ErrInvalidFileSize, Message: "[ERROR] Invalid file size.", Kind: Validation},

	ErrHandleTaken:   {Code: ErrHandleTaken, Message: "[ERROR] Username already taken.", Kind: CapacityExceeded},
	ErrServerFull:    {Code: ErrServerFull, Message: "[ERROR] Server is full. Try again later.", Kind: CapacityExceeded},
	ErrRoomSlotsFull: {Code: ErrRoomSlotsFull, Message: "[WARN] Room slots are full, try again later.", Kind: CapacityExceeded},
	ErrRoomFull:      {Code: ErrRoomFull, Message: "[WARN] Room is full", Kind: CapacityExceeded},

	ErrUserNotOnline: {Code: ErrUserNotOnline, Message: "[ERROR] User '%s' not online.", Kind: NotFound},
	ErrNotInRoom:     {Code: ErrNotInRoom, Message: "[ERROR] Join a room first", Kind: NotFound},

	ErrShortRead: {Code: ErrShortRead, Message: "[ERROR] Failed to receive full file data.", Kind: Transport},

	ErrUnknown:     {Code: ErrUnknown, Message: "[ERROR] An unexpected server error occurred.", Kind: Resource},
	ErrOutOfMemory: {Code: ErrOutOfMemory, Message: "[ERROR] Server out of memory. Try later.", Kind: Resource},
}
