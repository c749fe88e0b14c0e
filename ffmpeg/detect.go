// Package ffmpeg provides functionality for detecting and working with FFmpeg.
// It includes capabilities for locating the FFmpeg executable and reading
// its version.
package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Private functions (alphabetical)

// checkFFmpegExistence looks for the ffmpeg executable in PATH first, then in
// the usual installation directories of the current OS.
func checkFFmpegExistence() (string, bool) {
	if path, err := exec.LookPath(executableName()); err == nil {
		return path, true
	}
	for _, path := range getCommonInstallPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// executableName is "ffmpeg" with the platform's executable suffix.
func executableName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// getCommonInstallPaths returns the places FFmpeg is usually installed to on
// the current OS.
func getCommonInstallPaths() []string {
	name := executableName()
	switch runtime.GOOS {
	case "windows":
		paths := []string{
			filepath.Join("C:", "Program Files", "FFmpeg", "bin", name),
			filepath.Join("C:", "Program Files (x86)", "FFmpeg", "bin", name),
			filepath.Join("C:", "FFmpeg", "bin", name),
		}
		if programFiles := os.Getenv("ProgramFiles"); programFiles != "" {
			paths = append(paths, filepath.Join(programFiles, "FFmpeg", "bin", name))
		}
		return paths
	case "darwin":
		return []string{
			filepath.Join("/usr", "local", "bin", name),
			filepath.Join("/opt", "homebrew", "bin", name),
			filepath.Join("/opt", "local", "bin", name),
		}
	default:
		return []string{
			filepath.Join("/usr", "bin", name),
			filepath.Join("/usr", "local", "bin", name),
			filepath.Join("/opt", "ffmpeg", "bin", name),
		}
	}
}

// getFFmpegVersion runs "ffmpeg -version" and returns the parsed version.
func getFFmpegVersion(ffmpegPath string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), GetDefaultTimeout())
	defer cancel()

	output, err := exec.CommandContext(ctx, ffmpegPath, "-version").Output()
	if err != nil {
		return "", FormatError("error getting FFmpeg version: %w", err)
	}
	firstLine, _, _ := strings.Cut(string(output), "\n")
	return parseVersionFromFirstLine(firstLine), nil
}

// parseVersionFromFirstLine extracts the version from the first line of
// "ffmpeg -version", e.g. "ffmpeg version n6.1.1-dev-123 Copyright ...".
// The git "n" prefix and any "-dev" suffix are dropped.
func parseVersionFromFirstLine(firstLine string) string {
	_, after, found := strings.Cut(firstLine, " version ")
	if !found {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	version := strings.TrimPrefix(fields[0], "n")
	if idx := strings.Index(version, "-dev"); idx > 0 {
		version = version[:idx]
	}
	return version
}

// Public functions (alphabetical)

// DetectFFmpeg locates the FFmpeg installation on the system. When FFmpeg
// cannot be found it returns an FFmpegInfo with Installed set to false and no
// error.
func DetectFFmpeg() (*FFmpegInfo, error) {
	ffmpegPath, found := checkFFmpegExistence()
	if !found {
		return &FFmpegInfo{Installed: false, Version: "unknown"}, nil
	}
	return ResolveFFmpeg(ffmpegPath)
}

// ResolveFFmpeg checks the FFmpeg executable at ffmpegPath, which may also be
// a bare command name looked up in PATH.
func ResolveFFmpeg(ffmpegPath string) (*FFmpegInfo, error) {
	resolved, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return &FFmpegInfo{Installed: false, Path: ffmpegPath, Version: "unknown"},
			FormatError("ffmpeg executable %q not usable: %w", ffmpegPath, err)
	}

	version, err := getFFmpegVersion(resolved)
	if err != nil {
		return &FFmpegInfo{Installed: false, Path: resolved, Version: "unknown"}, err
	}
	if version == "" {
		version = "unknown"
	}

	return &FFmpegInfo{
		Installed: true,
		Path:      resolved,
		Version:   version,
	}, nil
}
