package ffmpeg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTracks is returned when a container holds no subtitle stream.
var ErrNoTracks = errors.New(errorPrefix + "no subtitle tracks found")

// ParseError reports a stream header that does not follow the expected
// grammar. Line is the offending diagnostic line, untouched.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%smalformed stream header (%s): %q", errorPrefix, e.Reason, e.Line)
}

// ConflictError reports a stale temporary file the operator chose not to
// overwrite.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%stemp file already exists: %s", errorPrefix, e.Path)
}

// ExternalToolError reports an FFmpeg invocation that exited non-zero.
// Diagnostics holds FFmpeg's stderr exactly as it was captured.
type ExternalToolError struct {
	Args        []string
	ExitCode    int
	Diagnostics string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%sextraction failed with exit status %d (ffmpeg %s):\n%s",
		errorPrefix, e.ExitCode, strings.Join(e.Args, " "), e.Diagnostics)
}

// FilesystemError wraps an I/O failure on a path in the source directory.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s%s %s: %v", errorPrefix, e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }
