/*
Package logx provides the process-wide log sink: a structured logger backed
by github.com/rs/zerolog, rendered as plain "YYYY-MM-DD HH:MM:SS - message"
lines and mirrored to both a timestamped file under logs/ and stdout.

It keeps the teacher's free-function surface (Info/Warn/Error/Fatal plus a
Logger accessor) but routes every line through a Sink instead of a bare
os.Stdout writer, so the file and console copies are each protected by their
own lock and the file is flushed on every write.
*/
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logTimestampFormat = "2006-01-02 15:04:05"

// lockedWriter serializes writes to w under its own mutex so concurrent log
// lines never interleave, and optionally flushes after every write.
type lockedWriter struct {
	mu    sync.Mutex
	w     io.Writer
	flush func() error
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	n, err := lw.w.Write(p)
	if err == nil && lw.flush != nil {
		err = lw.flush()
	}
	return n, err
}

// Sink is the singleton append-only log destination opened at startup. It
// mirrors every line to a timestamped file under <logDir> and to stdout,
// each under its own lock, and is safe to Close more than once.
type Sink struct {
	file      *os.File
	path      string
	closeOnce sync.Once
	closeErr  error
}

// NewSink opens a timestamped log file under logDir (created with mode 0755
// if absent) and reconfigures the global zerolog logger to write through it
// and through stdout.
func NewSink(logDir string) (*Sink, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	name := time.Now().Format("20060102_150405") + ".log"
	path := filepath.Join(logDir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", path, err)
	}

	sink := &Sink{file: file, path: path}

	fileWriter := &lockedWriter{w: file, flush: file.Sync}
	stdoutWriter := &lockedWriter{w: os.Stdout}

	console := zerolog.ConsoleWriter{
		Out:        io.MultiWriter(fileWriter, stdoutWriter),
		NoColor:    true,
		TimeFormat: logTimestampFormat,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i any) string {
			return fmt.Sprintf("%v -", i)
		},
	}

	zerolog.TimeFieldFormat = logTimestampFormat
	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	return sink, nil
}

// Path returns the path of the underlying log file.
func (s *Sink) Path() string {
	return s.path
}

// Close flushes and closes the underlying log file. It is idempotent.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// checkFields validates that the variadic fields parameter has an even
// number of elements (key-value pairs). If the count is odd, it logs a
// warning and returns nil to prevent zerolog from panicking.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("logx call (%s) received odd number of fields: %v. Fields ignored.", level, fields)
		return nil
	}
	return fields
}

// Info records a log message at the Info level.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(checkFields("Info", fields)).CallerSkipFrame(1).Msg(msg)
}

// Warn records a log message at the Warn level.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(checkFields("Warn", fields)).CallerSkipFrame(1).Msg(msg)
}

// Error records a log message at the Error level.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(checkFields("Error", fields)).CallerSkipFrame(1).Msg(msg)
}

// Fatal records a log message at the Fatal level and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(checkFields("Fatal", fields)).CallerSkipFrame(1).Msg(msg)
}
