// Package ffmpeg provides functionality for detecting and working with FFmpeg.
// It offers capabilities for listing the subtitle streams of a container by
// reading FFmpeg's input dump, naming the files they are copied into, and
// copying them out without re-encoding.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Public types (alphabetical)

// CommandRunner runs the FFmpeg executable as a subprocess.
type CommandRunner struct {
	// FFmpegPath is the path to the FFmpeg executable
	FFmpegPath string
}

// Runner is the narrow capability the prober and extractor need from FFmpeg.
// Tests substitute canned implementations.
type Runner interface {
	// Probe describes the input without writing an output file and returns
	// FFmpeg's diagnostic (stderr) text. A non-zero exit is expected and is
	// not an error.
	Probe(ctx context.Context, path string) (string, error)

	// Extract runs one stream copy. A non-zero exit is reported through
	// ExtractResult; the error is reserved for failing to run FFmpeg at all.
	Extract(ctx context.Context, req ExtractRequest) (ExtractResult, error)
}

// Public functions (alphabetical)

// ExtractArgs returns the FFmpeg arguments for a stream copy. Without -y,
// FFmpeg refuses to replace an output file that appeared after it was checked.
func ExtractArgs(req ExtractRequest) []string {
	args := []string{
		"-hide_banner",
		"-nostdin",
		"-i", FileURL(req.Input),
		"-map", req.Selector,
		"-c", "copy",
	}
	if req.Muxer != "" {
		args = append(args, "-f", req.Muxer)
	}
	return append(args, FileURL(req.Output))
}

// FileURL pins path to FFmpeg's file protocol. A bare name such as
// "Movie: Part 2.mkv" would otherwise be read as a "Movie" protocol URL.
func FileURL(path string) string {
	return filePrefix + path
}

// NewCommandRunner creates a CommandRunner for a detected FFmpeg installation.
func NewCommandRunner(ffmpegInfo *FFmpegInfo) (*CommandRunner, error) {
	if ffmpegInfo == nil || !ffmpegInfo.Installed {
		return nil, FormatError("ffmpeg not available")
	}
	return &CommandRunner{FFmpegPath: ffmpegInfo.Path}, nil
}

// ProbeArgs returns the FFmpeg arguments that dump the stream layout of path.
func ProbeArgs(path string) []string {
	return []string{"-hide_banner", "-nostdin", "-i", FileURL(path)}
}

// Public methods (alphabetical)

// Extract runs FFmpeg in req.Dir and captures its stderr.
func (r *CommandRunner) Extract(ctx context.Context, req ExtractRequest) (ExtractResult, error) {
	cmd := exec.CommandContext(ctx, r.FFmpegPath, ExtractArgs(req)...)
	cmd.Dir = req.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ExtractResult{}, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return ExtractResult{}, FormatError("error running extraction: %w", err)
		}
		return ExtractResult{ExitCode: exitErr.ExitCode(), Diagnostics: stderr.String()}, nil
	}
	return ExtractResult{Diagnostics: stderr.String()}, nil
}

// Probe runs "ffmpeg -i path" and returns its stderr. FFmpeg always exits
// non-zero here because no output is given; only failing to start counts.
func (r *CommandRunner) Probe(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, r.FFmpegPath, ProbeArgs(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", FormatError("error running probe: %w", err)
		}
	}
	return stderr.String(), nil
}
