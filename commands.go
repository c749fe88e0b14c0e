package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/torre76/subhound/ffmpeg"
	"github.com/torre76/subhound/picker"
	"github.com/urfave/cli/v2"
)

// Private types (alphabetical)

// extractOptions holds everything the extract command reads from flags.
type extractOptions struct {
	File           string
	Dir            string
	Exts           []string
	All            bool
	Tracks         []int
	ExistingOutput ffmpeg.Policy
	StaleTemp      ffmpeg.Policy
	UniqueTemp     bool
}

// session bundles the collaborators shared by the commands.
type session struct {
	log    *logrus.Logger
	runner ffmpeg.Runner
	prober *ffmpeg.Prober
	picker picker.Picker
	out    io.Writer
}

// Private functions (alphabetical)

// configureLogger builds the logrus logger from the verbosity flags.
func configureLogger(c *cli.Context) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !c.Bool("debug"),
	})
	switch {
	case c.Bool("debug"):
		log.SetLevel(logrus.DebugLevel)
	case c.Bool("verbose"):
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	// Package-level notes, such as unknown format fallbacks, use the
	// standard logger.
	logrus.SetLevel(log.GetLevel())
	logrus.SetOutput(os.Stderr)
	return log
}

// extractCommand implements the default command: pick a file, pick tracks,
// copy each of them out.
func extractCommand(c *cli.Context) error {
	opts, err := extractOptionsFromFlags(c)
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}

	sum, err := runExtract(c.Context, s, opts)
	if sum.Selected > 0 {
		printExtractSummary(s.out, sum)
	}
	return err
}

// extractOptionsFromFlags reads and validates the extract flags.
func extractOptionsFromFlags(c *cli.Context) (extractOptions, error) {
	existing, err := ffmpeg.ParsePolicy(c.String("on-existing"), "skip")
	if err != nil {
		return extractOptions{}, fmt.Errorf("--on-existing: %w", err)
	}
	stale, err := ffmpeg.ParsePolicy(c.String("on-stale-temp"), "abort")
	if err != nil {
		return extractOptions{}, fmt.Errorf("--on-stale-temp: %w", err)
	}
	return extractOptions{
		File:           c.Args().First(),
		Dir:            c.String("dir"),
		Exts:           c.StringSlice("ext"),
		All:            c.Bool("all"),
		Tracks:         c.IntSlice("track"),
		ExistingOutput: existing,
		StaleTemp:      stale,
		UniqueTemp:     c.Bool("unique-temp"),
	}, nil
}

// listCommand prints the subtitle tracks of a file without extracting.
func listCommand(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	source, err := resolveSource(s.picker, c.Args().First(), c.String("dir"), c.StringSlice("ext"))
	if err != nil {
		return err
	}
	tracks, err := s.prober.RequireSubtitleTracks(c.Context, source)
	if err != nil {
		return err
	}
	printTrackCount(s.out, source, len(tracks))
	fmt.Fprintln(s.out, renderTrackTable(tracks))
	return nil
}

// newSession detects FFmpeg and wires logging, runner, prober and picker.
func newSession(c *cli.Context) (*session, error) {
	if c.Bool("no-color") || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	log := configureLogger(c)

	var (
		info *ffmpeg.FFmpegInfo
		err  error
	)
	if path := c.String("ffmpeg"); path != "" {
		info, err = ffmpeg.ResolveFFmpeg(path)
	} else {
		info, err = ffmpeg.DetectFFmpeg()
	}
	if err != nil {
		return nil, fmt.Errorf("error finding FFmpeg: %w", err)
	}
	if !info.Installed {
		return nil, fmt.Errorf("FFmpeg not found; install it or pass --ffmpeg")
	}
	log.WithField("path", info.Path).WithField("version", info.Version).Debug("Using FFmpeg")

	commandRunner, err := ffmpeg.NewCommandRunner(info)
	if err != nil {
		return nil, err
	}
	var runner ffmpeg.Runner = commandRunner
	if isTerminal(os.Stderr) && !c.Bool("debug") {
		runner = &spinnerRunner{inner: commandRunner, out: os.Stderr}
	}

	prober, err := ffmpeg.NewProber(runner, log)
	if err != nil {
		return nil, err
	}

	var p picker.Picker = picker.Unavailable{}
	if isTerminal(os.Stdin) {
		p = picker.NewTerminal(os.Stdin, os.Stdout)
	}

	return &session{
		log:    log,
		runner: runner,
		prober: prober,
		picker: p,
		out:    os.Stdout,
	}, nil
}

// runExtract resolves the source, lets the operator pick tracks and extracts
// them one at a time in selection order. The first failing track stops the
// run; the summary still reports what was done before it.
func runExtract(ctx context.Context, s *session, opts extractOptions) (extractSummary, error) {
	var sum extractSummary

	source, err := resolveSource(s.picker, opts.File, opts.Dir, opts.Exts)
	if err != nil {
		return sum, err
	}
	s.log.WithField("source", source).Info("Extracting subtitles")

	tracks, err := s.prober.RequireSubtitleTracks(ctx, source)
	if err != nil {
		return sum, err
	}
	printTrackCount(s.out, source, len(tracks))

	selected, err := selectTracks(s.picker, tracks, opts.All, opts.Tracks)
	if err != nil {
		return sum, err
	}
	sum.Selected = len(selected)

	extractor, err := ffmpeg.NewExtractor(s.runner, s.picker, ffmpeg.ExtractorOptions{
		ExistingOutput: opts.ExistingOutput,
		StaleTemp:      opts.StaleTemp,
		UniqueTemp:     opts.UniqueTemp,
		Log:            s.log,
	})
	if err != nil {
		return sum, err
	}

	successStyle := color.New(color.FgGreen)
	skipStyle := color.New(color.FgYellow)
	for _, track := range selected {
		outcome, err := extractor.Extract(ctx, source, track)
		if err != nil {
			return sum, fmt.Errorf("error extracting track %d: %w", track.StreamIndex, err)
		}
		switch outcome.Kind {
		case ffmpeg.OutcomeProduced:
			sum.Produced = append(sum.Produced, outcome.Path)
			successStyle.Fprintf(s.out, "✅ Wrote %s\n", outcome.Path)
		case ffmpeg.OutcomeSkipped:
			sum.Skipped = append(sum.Skipped, outcome.Path)
			skipStyle.Fprintf(s.out, "⏭️ Skipped %s\n", outcome.Path)
		}
	}
	return sum, nil
}

// selectTracks picks the tracks to extract: the --track indices when given,
// every track with --all, otherwise the operator's choice.
func selectTracks(p picker.Picker, tracks []ffmpeg.SubtitleTrack, all bool, indices []int) ([]ffmpeg.SubtitleTrack, error) {
	if len(indices) > 0 {
		seen := make(map[int]bool, len(indices))
		selected := make([]ffmpeg.SubtitleTrack, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(tracks) {
				return nil, fmt.Errorf("track %d does not exist (valid: 0-%d)", idx, len(tracks)-1)
			}
			if !seen[idx] {
				seen[idx] = true
				selected = append(selected, tracks[idx])
			}
		}
		return selected, nil
	}
	if all {
		return tracks, nil
	}

	choices := make([]picker.Choice[ffmpeg.SubtitleTrack], len(tracks))
	for i, track := range tracks {
		choices[i] = picker.Choice[ffmpeg.SubtitleTrack]{Label: track.Label(), Value: track}
	}
	return picker.Many(p, "Select subtitle tracks to extract", "", choices)
}
