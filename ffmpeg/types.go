// Package ffmpeg provides functionality for detecting and working with FFmpeg.
package ffmpeg

import (
	"fmt"
	"strings"
)

// Public types (alphabetical)

// ExtractRequest describes a single stream-copy invocation of FFmpeg.
// Input and Output are names relative to Dir, which becomes the working
// directory of the FFmpeg process.
type ExtractRequest struct {
	// Dir is the working directory, always the source file's directory.
	Dir string

	// Input is the source file name.
	Input string

	// Selector is the -map expression, e.g. "0:s:2".
	Selector string

	// Muxer is the optional -f output format; empty means FFmpeg guesses
	// from the output extension.
	Muxer string

	// Output is the temporary output file name.
	Output string
}

// ExtractResult is what an extraction invocation reports back.
type ExtractResult struct {
	// ExitCode is the process exit status; zero means success.
	ExitCode int

	// Diagnostics is FFmpeg's stderr, verbatim.
	Diagnostics string
}

// FFmpegInfo contains information about the FFmpeg installation
type FFmpegInfo struct {
	// Installed is true if FFmpeg is found in the system
	Installed bool
	// Path is the full path to the FFmpeg executable
	Path string
	// Version is the version of FFmpeg
	Version string
}

// Outcome reports how the extraction of one track ended when it did not fail.
type Outcome struct {
	Kind OutcomeKind
	// Path is the final output path; set for produced and skipped outcomes.
	Path string
}

// OutcomeKind enumerates non-failing extraction results.
type OutcomeKind int

const (
	// OutcomeProduced means the track was written to Outcome.Path.
	OutcomeProduced OutcomeKind = iota
	// OutcomeSkipped means the operator kept the existing Outcome.Path.
	OutcomeSkipped
)

// String returns a lower-case name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeProduced:
		return "produced"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// OutputFormat is the on-disk representation chosen for a subtitle codec.
type OutputFormat struct {
	// Extension is the file extension without the leading dot.
	Extension string
	// Muxer is the FFmpeg output format name, empty when unknown.
	Muxer string
}

// OutputNames holds the two paths used while extracting one track.
type OutputNames struct {
	// Final is the path the track is published under.
	Final string
	// Temp is the working path FFmpeg writes to.
	Temp string
}

// SubtitleTrack is one subtitle stream found in a container.
//
// StreamIndex is the presentation index: the position of the track among the
// subtitle streams only. It is what "-map 0:s:N" expects and is assigned once
// all diagnostic lines have been parsed.
type SubtitleTrack struct {
	StreamIndex int
	Lang        string
	Format      string
	Title       string

	// Specifier is the stream specifier as FFmpeg printed it, e.g. "0:2".
	Specifier string
	Default   bool
	Forced    bool
}

// Label returns the text shown for the track in pickers, such as
// `#0 subrip [eng, English] "Signs" (default)`.
func (t SubtitleTrack) Label() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", t.StreamIndex, t.Format)
	if t.Lang != "" {
		if name := LanguageName(t.Lang); name != "" {
			fmt.Fprintf(&b, " [%s, %s]", t.Lang, name)
		} else {
			fmt.Fprintf(&b, " [%s]", t.Lang)
		}
	}
	if t.Title != "" {
		fmt.Fprintf(&b, " %q", t.Title)
	}
	var flags []string
	if t.Default {
		flags = append(flags, "default")
	}
	if t.Forced {
		flags = append(flags, "forced")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(flags, ", "))
	}
	return b.String()
}

// String returns a compact description used in log lines.
func (t SubtitleTrack) String() string {
	s := fmt.Sprintf("Stream #0:%d", t.StreamIndex)
	if t.Lang != "" {
		s += fmt.Sprintf(" (%s)", t.Lang)
	}
	s += " " + t.Format
	if t.Title != "" {
		s += fmt.Sprintf(" %q", t.Title)
	}
	return s
}
