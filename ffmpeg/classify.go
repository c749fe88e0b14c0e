package ffmpeg

import "strings"

// LineKind is the role a diagnostic line plays while scanning for tracks.
type LineKind int

const (
	// LineOther is any line that carries nothing the parser needs.
	LineOther LineKind = iota
	// LineSubtitleHeader starts a subtitle stream block.
	LineSubtitleHeader
	// LineStreamHeader starts a block for a non-subtitle stream.
	LineStreamHeader
	// LineTitle is a "title : ..." metadata line.
	LineTitle
	// LineBoundary starts an input, output or chapter block.
	LineBoundary
)

// boundaryPrefixes open blocks whose metadata must never reach a track.
var boundaryPrefixes = []string{"Input #", "Output #", "Chapter #"}

// ClassifyLine tells what a line of FFmpeg's input dump is. Leading
// whitespace is ignored.
func ClassifyLine(line string) LineKind {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, streamMarker) {
		if strings.Contains(trimmed, subtitleMarker) {
			return LineSubtitleHeader
		}
		return LineStreamHeader
	}
	for _, prefix := range boundaryPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return LineBoundary
		}
	}
	if _, ok := metadataValue(trimmed, titleKey); ok {
		return LineTitle
	}
	return LineOther
}

// metadataValue returns the trimmed value of a "key : value" line when the
// key matches. The value is everything after the first colon.
func metadataValue(line, key string) (string, bool) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	if !strings.EqualFold(strings.TrimSpace(name), key) {
		return "", false
	}
	return strings.TrimSpace(value), true
}
