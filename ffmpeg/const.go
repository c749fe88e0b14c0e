// Package ffmpeg provides functionality for detecting and working with FFmpeg.
// It includes tools for listing the subtitle streams of a media container and
// copying them out to standalone subtitle files.
package ffmpeg

import (
	"fmt"
	"time"
)

// Private constants (alphabetical)
const (
	// defaultTimeout is the standard timeout for short FFmpeg housekeeping
	// calls such as version detection. Probing and extraction are not bounded
	// by it; they run until FFmpeg exits or the caller cancels.
	defaultTimeout = 30 * time.Second

	// errorPrefix is used as a prefix for all error messages from this package.
	errorPrefix = "ffmpeg: "

	// filePrefix selects FFmpeg's local file protocol for a path.
	filePrefix = "file:"

	// fallbackExtension is used for subtitle codecs with no known container.
	fallbackExtension = "sub"

	// noOutputNotice is the last line of every "ffmpeg -i" run without an
	// output file.
	noOutputNotice = "At least one output file must be specified"

	// streamMarker starts every stream header line in FFmpeg's input dump.
	streamMarker = "Stream #"

	// subtitleMarker identifies a subtitle stream on a stream header line.
	subtitleMarker = "Subtitle"

	// tempBaseName is the base name of the working file FFmpeg writes to
	// before it is renamed to its final name.
	tempBaseName = "output"

	// titleKey is the metadata key carrying a stream title.
	titleKey = "title"
)

// Public constants (alphabetical)
const (
	// SubtitleSelectorClass is the stream type used in -map selectors.
	SubtitleSelectorClass = "s"
)

// Public functions (alphabetical)

// GetDefaultTimeout returns the standard timeout duration for FFmpeg
// housekeeping operations.
func GetDefaultTimeout() time.Duration {
	return defaultTimeout
}

// FormatError creates a standardized error message with the package prefix.
// It ensures all errors from this package have a consistent format and can be
// easily identified as originating from the ffmpeg package.
func FormatError(format string, args ...interface{}) error {
	return fmt.Errorf(errorPrefix+format, args...)
}
