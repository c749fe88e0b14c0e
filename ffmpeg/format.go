package ffmpeg

import "github.com/sirupsen/logrus"

// knownFormats maps FFmpeg subtitle codec names to the file they are copied
// into. Matching is exact and case-sensitive.
var knownFormats = map[string]OutputFormat{
	"subrip":            {Extension: "srt", Muxer: "srt"},
	"ass":               {Extension: "ass", Muxer: "ass"},
	"ssa":               {Extension: "ass", Muxer: "ass"},
	"webvtt":            {Extension: "vtt", Muxer: "webvtt"},
	"hdmv_pgs_subtitle": {Extension: "sup", Muxer: "sup"},
	"pgssub":            {Extension: "sup", Muxer: "sup"},
}

// ResolveFormat returns the output extension and muxer for a codec name.
// Unknown codecs get the generic "sub" extension and no muxer, leaving the
// choice to FFmpeg; this is noted at debug level and is never an error.
func ResolveFormat(codec string) OutputFormat {
	if f, ok := knownFormats[codec]; ok {
		return f
	}
	logrus.
		WithField("format", codec).
		WithField("extension", fallbackExtension).
		Debug("Unknown subtitle format, using fallback extension")
	return OutputFormat{Extension: fallbackExtension}
}

// FormatToExtension returns the output file extension for a codec name.
func FormatToExtension(codec string) string {
	return ResolveFormat(codec).Extension
}
