package ffmpeg

import (
	"strings"
)

// Private functions (alphabetical)

// beforeColon returns s up to its first colon. Bracketed parts of a stream
// header never contain one, so a closing bracket past it means the bracket
// was left open.
func beforeColon(s string) string {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return s
}

// firstToken returns s up to the first whitespace, comma or parenthesis.
func firstToken(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '('
	})
	if end < 0 {
		return s
	}
	return s[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseHeader turns one subtitle stream header into a track. The accepted
// shape, once the "Stream #" marker is removed, is
//
//	<n>[:<n>...][[0x<id>]][(<lang>)]:<text> Subtitle: <format>[ ,(...]
//
// for example "0:2(eng): Subtitle: subrip (default)". The bracketed hex id is
// what FFmpeg prints for MPEG-TS inputs and is ignored.
func parseHeader(line string) (SubtitleTrack, error) {
	fail := func(reason string) (SubtitleTrack, error) {
		return SubtitleTrack{}, &ParseError{Line: line, Reason: reason}
	}

	trimmed := strings.TrimLeft(line, " \t")
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, streamMarker))

	end := scanDigits(rest, 0)
	if end == 0 {
		return fail("missing stream index")
	}
	for end+1 < len(rest) && rest[end] == ':' && isDigit(rest[end+1]) {
		end = scanDigits(rest, end+1)
	}
	track := SubtitleTrack{Specifier: rest[:end]}

	pos := end
	if pos < len(rest) && rest[pos] == '[' {
		closing := strings.IndexByte(beforeColon(rest[pos:]), ']')
		if closing < 0 {
			return fail("unterminated stream id")
		}
		pos += closing + 1
	}
	if pos < len(rest) && rest[pos] == '(' {
		closing := strings.IndexByte(beforeColon(rest[pos:]), ')')
		if closing < 0 {
			return fail("unterminated language tag")
		}
		track.Lang = strings.TrimSpace(rest[pos+1 : pos+closing])
		if track.Lang == "" {
			return fail("empty language tag")
		}
		pos += closing + 1
	}
	if pos >= len(rest) || rest[pos] != ':' {
		return fail("missing colon after stream index")
	}

	_, details, found := strings.Cut(rest[pos+1:], subtitleMarker+":")
	if !found {
		return fail("missing " + subtitleMarker + ": separator")
	}
	details = strings.TrimSpace(details)
	track.Format = firstToken(details)
	if track.Format == "" {
		return fail("missing subtitle format")
	}
	track.Default = strings.Contains(details, "(default)")
	track.Forced = strings.Contains(details, "(forced)")
	return track, nil
}

// scanDigits returns the index of the first non-digit at or after start.
func scanDigits(s string, start int) int {
	i := start
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// splitLines splits diagnostic text on newlines, dropping carriage returns.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// Public functions (alphabetical)

// ParseDiagnostics parses the stderr text of "ffmpeg -i" into tracks.
func ParseDiagnostics(text string) ([]SubtitleTrack, error) {
	return ParseTracks(splitLines(text))
}

// ParseTracks builds one SubtitleTrack per subtitle stream header, in the
// order the headers appear.
//
// A track's block runs from its header to the next stream header, block
// boundary or the end of input; only "title" lines inside that block set its
// Title, and the last one wins. Any malformed subtitle header aborts the whole
// parse with a *ParseError.
//
// Once every line is consumed the tracks are renumbered 0..N-1, replacing the
// container-wide index FFmpeg printed with the subtitle-only presentation
// index.
func ParseTracks(lines []string) ([]SubtitleTrack, error) {
	var tracks []SubtitleTrack
	var current *SubtitleTrack

	for _, line := range lines {
		switch ClassifyLine(line) {
		case LineSubtitleHeader:
			if current != nil {
				tracks = append(tracks, *current)
			}
			track, err := parseHeader(line)
			if err != nil {
				return nil, err
			}
			current = &track
		case LineStreamHeader, LineBoundary:
			if current != nil {
				tracks = append(tracks, *current)
			}
			current = nil
		case LineTitle:
			if current == nil {
				continue
			}
			if title, _ := metadataValue(strings.TrimSpace(line), titleKey); title != "" {
				current.Title = title
			}
		}
	}
	if current != nil {
		tracks = append(tracks, *current)
	}

	for i := range tracks {
		tracks[i].StreamIndex = i
	}
	return tracks, nil
}
