// Package ffmpeg provides functionality for detecting and working with FFmpeg.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/torre76/subhound/picker"
)

// Public types (alphabetical)

// Extractor copies single subtitle tracks out of a container.
//
// Each track is written under a temporary name first and renamed into place
// only when FFmpeg succeeds. The temporary name is shared by every track of a
// directory unless UniqueTemp is set, so calls must not run concurrently on
// the same directory.
type Extractor struct {
	runner         Runner
	picker         picker.Picker
	log            logrus.FieldLogger
	existingOutput Policy
	staleTemp      Policy
	uniqueTemp     bool
	newTempTag     func() string
}

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// ExistingOutput decides what happens when the final file exists:
	// PolicyKeep skips the track.
	ExistingOutput Policy
	// StaleTemp decides what happens when the temporary file exists:
	// PolicyKeep aborts with a *ConflictError.
	StaleTemp Policy
	// UniqueTemp gives every extraction its own temporary name.
	UniqueTemp bool
	// Log receives progress and diagnostics; nil means the logrus default.
	Log logrus.FieldLogger
}

// Policy is a standing answer to a collision question.
type Policy int

const (
	// PolicyAsk puts the question to the operator through the picker.
	PolicyAsk Policy = iota
	// PolicyOverwrite always replaces the existing file.
	PolicyOverwrite
	// PolicyKeep always leaves the existing file alone.
	PolicyKeep
)

// Private methods (alphabetical)

// decide resolves a collision, asking the operator when the policy says so.
// It returns true when the existing file may be replaced.
func (e *Extractor) decide(policy Policy, header, prompt, keepLabel string) (bool, error) {
	switch policy {
	case PolicyOverwrite:
		return true, nil
	case PolicyKeep:
		return false, nil
	}
	if e.picker == nil {
		return false, picker.ErrNoTerminal
	}
	return picker.One(e.picker, header, prompt, []picker.Choice[bool]{
		{Label: "Overwrite", Value: true},
		{Label: keepLabel, Value: false},
	})
}

// Public functions (alphabetical)

// NewExtractor creates an Extractor that runs FFmpeg through runner and asks
// collision questions through p. p may be nil when both policies are
// standing answers.
func NewExtractor(runner Runner, p picker.Picker, opts ExtractorOptions) (*Extractor, error) {
	if runner == nil {
		return nil, FormatError("extractor needs a runner")
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{
		runner:         runner,
		picker:         p,
		log:            log,
		existingOutput: opts.ExistingOutput,
		staleTemp:      opts.StaleTemp,
		uniqueTemp:     opts.UniqueTemp,
		newTempTag:     uuid.NewString,
	}, nil
}

// ParsePolicy reads a policy name: "ask", "overwrite" or keepWord (such as
// "skip" or "abort"). The empty string means ask.
func ParsePolicy(value, keepWord string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ask":
		return PolicyAsk, nil
	case "overwrite":
		return PolicyOverwrite, nil
	case keepWord:
		return PolicyKeep, nil
	}
	return PolicyAsk, FormatError("unknown policy %q (want ask, overwrite or %s)", value, keepWord)
}

// Selector returns the -map expression picking the index-th subtitle stream
// of the first input.
func Selector(index int) string {
	return fmt.Sprintf("0:%s:%d", SubtitleSelectorClass, index)
}

// Public methods (alphabetical)

// Extract copies track out of source.
//
// The steps are: name the output; if it exists, overwrite or skip; if the
// temporary file exists, delete it or abort with a *ConflictError; run
// FFmpeg in the source directory; on a non-zero exit return an
// *ExternalToolError and leave the temporary file for inspection; otherwise
// rename the temporary file over the final one.
func (e *Extractor) Extract(ctx context.Context, source string, track SubtitleTrack) (Outcome, error) {
	format := ResolveFormat(track.Format)
	tempTag := ""
	if e.uniqueTemp {
		tempTag = e.newTempTag()
	}
	names := BuildOutputNames(source, track, format.Extension, tempTag)
	log := e.log.
		WithField("track", track.String()).
		WithField("output", names.Final)
	log.Info("Extracting subtitle track")

	exists, err := fileExists(names.Final)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		overwrite, err := e.decide(e.existingOutput,
			fmt.Sprintf("Output file already exists: %s", names.Final), "Overwrite or skip?", "Skip")
		if err != nil {
			return Outcome{}, err
		}
		if !overwrite {
			log.Info("Output file exists, skipping")
			return Outcome{Kind: OutcomeSkipped, Path: names.Final}, nil
		}
	}

	exists, err = fileExists(names.Temp)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		overwrite, err := e.decide(e.staleTemp,
			fmt.Sprintf("Temp file already exists: %s", names.Temp), "Overwrite or abort?", "Abort")
		if err != nil {
			return Outcome{}, err
		}
		if !overwrite {
			return Outcome{}, &ConflictError{Path: names.Temp}
		}
		if err := os.Remove(names.Temp); err != nil {
			return Outcome{}, &FilesystemError{Op: "remove", Path: names.Temp, Err: err}
		}
	}

	req := ExtractRequest{
		Dir:      filepath.Dir(source),
		Input:    filepath.Base(source),
		Selector: Selector(track.StreamIndex),
		Muxer:    format.Muxer,
		Output:   filepath.Base(names.Temp),
	}
	log.WithField("args", strings.Join(ExtractArgs(req), " ")).Debug("Running ffmpeg")

	result, err := e.runner.Extract(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	if result.ExitCode != 0 {
		log.WithField("exitCode", result.ExitCode).Debug("ffmpeg exited with an error")
		return Outcome{}, &ExternalToolError{
			Args:        ExtractArgs(req),
			ExitCode:    result.ExitCode,
			Diagnostics: result.Diagnostics,
		}
	}
	log.Debugf("ffmpeg output:\n%s", result.Diagnostics)

	if err := os.Rename(names.Temp, names.Final); err != nil {
		return Outcome{}, &FilesystemError{Op: "rename", Path: names.Temp, Err: err}
	}
	log.Info("Subtitles extracted")
	return Outcome{Kind: OutcomeProduced, Path: names.Final}, nil
}

// fileExists reports whether path exists. Errors other than "not found" are
// returned as *FilesystemError.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, &FilesystemError{Op: "stat", Path: path, Err: err}
}
