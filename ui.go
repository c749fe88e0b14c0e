package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/torre76/subhound/ffmpeg"
)

// Private types (alphabetical)

// extractSummary counts what happened to the selected tracks.
type extractSummary struct {
	Selected int
	Produced []string
	Skipped  []string
}

// spinnerRunner shows a spinner on a terminal while FFmpeg runs.
type spinnerRunner struct {
	inner ffmpeg.Runner
	out   io.Writer
}

// Private functions (alphabetical)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printExtractSummary prints the counts of an extraction run with proper
// pluralization.
func printExtractSummary(w io.Writer, sum extractSummary) {
	summaryStyle := color.New(color.FgCyan, color.Bold)
	regularStyle := color.New(color.Reset)
	pluralizeClient := pluralize.NewClient()

	produced := len(sum.Produced)
	skipped := len(sum.Skipped)

	summaryStyle.Fprintln(w, "\nℹ️ SUMMARY")
	regularStyle.Fprintln(w, "----------------")
	regularStyle.Fprintf(w, "💬 %d %s extracted", produced, pluralizeClient.Pluralize("subtitle file", produced, false))
	if skipped > 0 {
		regularStyle.Fprintf(w, ", %d skipped", skipped)
	}
	if rest := sum.Selected - produced - skipped; rest > 0 {
		regularStyle.Fprintf(w, ", %d not processed", rest)
	}
	fmt.Fprintln(w)
}

// printTrackCount prints how many subtitle tracks a file holds.
func printTrackCount(w io.Writer, source string, count int) {
	regularStyle := color.New(color.Reset)
	valueStyle := color.New(color.Bold)
	pluralizeClient := pluralize.NewClient()

	regularStyle.Fprintf(w, "🎬 Working on: ")
	valueStyle.Fprintf(w, "%s\n", filepath.Base(source))
	regularStyle.Fprintf(w, "💬 %d ", count)
	valueStyle.Fprintln(w, pluralizeClient.Pluralize("subtitle track", count, false))
}

// renderTrackTable formats the tracks of a file as a table.
func renderTrackTable(tracks []ffmpeg.SubtitleTrack) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Stream", "Lang", "Language", "Format", "Ext", "Title", "Flags"})
	for _, track := range tracks {
		var flags []string
		if track.Default {
			flags = append(flags, "default")
		}
		if track.Forced {
			flags = append(flags, "forced")
		}
		tw.AppendRow(table.Row{
			track.StreamIndex,
			track.Specifier,
			track.Lang,
			ffmpeg.LanguageName(track.Lang),
			track.Format,
			ffmpeg.FormatToExtension(track.Format),
			track.Title,
			strings.Join(flags, ", "),
		})
	}
	return tw.Render()
}

// Private methods (alphabetical)

// Extract implements ffmpeg.Runner.
func (r *spinnerRunner) Extract(ctx context.Context, req ffmpeg.ExtractRequest) (ffmpeg.ExtractResult, error) {
	stop := r.spin(fmt.Sprintf("Extracting %s from %s", req.Selector, req.Input))
	defer stop()
	return r.inner.Extract(ctx, req)
}

// Probe implements ffmpeg.Runner.
func (r *spinnerRunner) Probe(ctx context.Context, path string) (string, error) {
	stop := r.spin(fmt.Sprintf("Probing %s", filepath.Base(path)))
	defer stop()
	return r.inner.Probe(ctx, path)
}

// spin starts an indeterminate spinner and returns the function that clears
// it.
func (r *spinnerRunner) spin(description string) func() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
		_ = bar.Finish()
	}
}
