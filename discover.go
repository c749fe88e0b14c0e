package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/torre76/subhound/picker"
)

// ErrNoCandidates is returned when the scanned directory holds no media file
// with an accepted extension.
var ErrNoCandidates = errors.New("no candidate media files found")

// gatherCandidates lists the regular files in dir whose extension is one of
// exts, compared case-insensitively. Extensions may be given with or without
// the leading dot. The result is sorted by name.
func gatherCandidates(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	accepted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			accepted[ext] = true
		}
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if accepted[ext] {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(candidates)
	return candidates, nil
}

// resolveSource returns the media file to work on: file when given, otherwise
// the operator's pick among the candidates of dir.
func resolveSource(p picker.Picker, file, dir string, exts []string) (string, error) {
	if file != "" {
		info, err := os.Stat(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("file does not exist: %s", file)
			}
			return "", fmt.Errorf("error checking %s: %w", file, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", file)
		}
		return file, nil
	}

	candidates, err := gatherCandidates(dir, exts)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s (extensions: %s)", ErrNoCandidates, dir, strings.Join(exts, ", "))
	}

	choices := make([]picker.Choice[string], len(candidates))
	for i, candidate := range candidates {
		choices[i] = picker.Choice[string]{Label: filepath.Base(candidate), Value: candidate}
	}
	return picker.One(p, "Choose a media file to extract subtitles from", "", choices)
}
