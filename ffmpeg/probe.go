// Package ffmpeg provides functionality for detecting and working with FFmpeg.
package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Prober lists the subtitle streams of media files.
type Prober struct {
	runner Runner
	log    logrus.FieldLogger
}

// NewProber creates a Prober that talks to FFmpeg through runner. A nil
// logger falls back to the standard logrus logger.
func NewProber(runner Runner, log logrus.FieldLogger) (*Prober, error) {
	if runner == nil {
		return nil, FormatError("prober needs a runner")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Prober{runner: runner, log: log}, nil
}

// ListSubtitleTracks probes path and returns its subtitle tracks numbered
// by presentation index. A container without subtitles is not an error here;
// callers that need at least one track use RequireSubtitleTracks.
func (p *Prober) ListSubtitleTracks(ctx context.Context, path string) ([]SubtitleTrack, error) {
	tracks, _, err := p.probe(ctx, path)
	return tracks, err
}

// RequireSubtitleTracks is ListSubtitleTracks failing with ErrNoTracks when
// the container holds no subtitle stream. The error ends with FFmpeg's last
// complaint, if any, such as a missing file or an unknown format.
func (p *Prober) RequireSubtitleTracks(ctx context.Context, path string) ([]SubtitleTrack, error) {
	tracks, diagnostics, err := p.probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		if reason := lastDiagnosticLine(diagnostics); reason != "" {
			return nil, fmt.Errorf("%w in %s: %s", ErrNoTracks, path, reason)
		}
		return nil, fmt.Errorf("%w in %s", ErrNoTracks, path)
	}
	return tracks, nil
}

// probe runs FFmpeg on path and parses its output. The raw diagnostics are
// returned alongside the tracks.
func (p *Prober) probe(ctx context.Context, path string) ([]SubtitleTrack, string, error) {
	p.log.WithField("path", path).Debug("Enumerating subtitle tracks")

	diagnostics, err := p.runner.Probe(ctx, path)
	if err != nil {
		return nil, "", err
	}
	p.log.WithField("path", path).Debugf("Probe output:\n%s", diagnostics)

	tracks, err := ParseDiagnostics(diagnostics)
	if err != nil {
		p.log.WithField("path", path).WithError(err).Error("Error parsing probe output")
		return nil, diagnostics, err
	}
	for _, track := range tracks {
		p.log.
			WithField("index", track.StreamIndex).
			WithField("specifier", track.Specifier).
			WithField("lang", track.Lang).
			WithField("format", track.Format).
			WithField("title", track.Title).
			Debug("Found subtitle track")
	}
	return tracks, diagnostics, nil
}

// lastDiagnosticLine returns the last non-blank line of FFmpeg's stderr when
// FFmpeg could not read the input, and "" when it printed an input dump. The
// notice every output-less run ends with is ignored.
func lastDiagnosticLine(diagnostics string) string {
	last := ""
	for _, line := range splitLines(diagnostics) {
		switch ClassifyLine(line) {
		case LineBoundary, LineStreamHeader, LineSubtitleHeader:
			return ""
		}
		if line = strings.TrimSpace(line); line != "" && line != noOutputNotice {
			last = line
		}
	}
	return last
}
