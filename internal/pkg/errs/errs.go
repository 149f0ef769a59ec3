/*
Package errs provides the application's error taxonomy and a CustomError
type that carries a business code, a client-facing message, and a Kind used
to decide whether the owning session must be torn down.
*/
package errs

import "fmt"

// Kind classifies an error by its propagation policy (spec §7).
type Kind int

const (
	// Validation covers bad handles, bad room names, bad sizes, missing args.
	Validation Kind = iota

	// CapacityExceeded covers registry/room/queue capacity limits.
	CapacityExceeded

	// NotFound covers whisper/file targets that are not online.
	NotFound

	// Transport covers socket read/write errors and short reads.
	Transport

	// Resource covers allocation failures.
	Resource
)

// CustomError is the error type used throughout the chat core.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the line sent back to the client, including its status
	// prefix ("[ERROR] ", "[WARN] ", ...).
	Message string

	// Kind classifies the error for propagation-policy decisions.
	Kind Kind
}

// Error implements the standard Go error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// Fatal reports whether this error's Kind terminates the owning session.
func (e *CustomError) Fatal() bool {
	return e.Kind == Transport
}

// NewError constructs a *CustomError from a predefined code. details are
// printf-style arguments applied to the template message when it contains a
// formatting verb.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		template = errorMap[ErrUnknown]
	}

	customErr := template

	if len(details) > 0 {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	}

	return &customErr
}
