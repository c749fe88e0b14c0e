// Package main provides the entry point for the subhound application.
// It lists the subtitle streams of media containers and copies the chosen
// ones out to standalone subtitle files using FFmpeg.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// Public variables (alphabetical)

// BuildDate contains the date when the binary was built.
// This value is set during build using ldflags.
var BuildDate = "unknown"

// Commit contains the git commit hash that the binary was built from.
// This value is set during build using ldflags.
var Commit = "unknown"

// Version contains the current version of the application.
// This value can be overridden during build using ldflags:
// go build -ldflags="-X 'main.Version=v1.0.0'"
var Version = "Development Version"

// Private functions (alphabetical)

// commonFlags are shared by every command.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Log debug output, including FFmpeg diagnostics",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log progress at info level",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
		&cli.StringFlag{
			Name:  "ffmpeg",
			Usage: "Path to the FFmpeg executable (detected when empty)",
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory scanned for media files when no MEDIA_FILE is given",
			Value:   ".",
		},
		&cli.StringSliceFlag{
			Name:  "ext",
			Usage: "Extensions of the media files offered for selection",
			Value: cli.NewStringSlice("mkv"),
		},
	}
}

// extractFlags are the flags of the default extract action.
func extractFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.BoolFlag{
			Name:    "all",
			Aliases: []string{"a"},
			Usage:   "Extract every subtitle track without asking",
		},
		&cli.IntSliceFlag{
			Name:    "track",
			Aliases: []string{"t"},
			Usage:   "Subtitle track to extract, by presentation index (repeatable)",
		},
		&cli.StringFlag{
			Name:  "on-existing",
			Usage: "What to do when an output file exists: ask, overwrite or skip",
			Value: "ask",
		},
		&cli.StringFlag{
			Name:  "on-stale-temp",
			Usage: "What to do when a leftover temp file exists: ask, overwrite or abort",
			Value: "ask",
		},
		&cli.BoolFlag{
			Name:  "unique-temp",
			Usage: "Use a unique temp file name per track instead of the shared output.<ext>",
		},
	)
}

func versionPrinter(c *cli.Context) {
	summaryStyle := color.New(color.FgCyan, color.Bold)
	valueStyle := color.New(color.Bold)
	regularStyle := color.New(color.Reset)

	summaryStyle.Printf("🐾 SubHound %s\n", Version)
	regularStyle.Printf("  🛠️ Build date: ")
	valueStyle.Printf("%s\n", BuildDate)
	regularStyle.Printf("  🔍 Commit: ")
	valueStyle.Printf("%s\n", Commit)
}

// newApp builds the command line application.
func newApp() *cli.App {
	return &cli.App{
		Name:  "subhound",
		Usage: "Extract subtitle tracks from media containers",
		Description: "SubHound lists the subtitle streams FFmpeg finds in a media file, " +
			"lets you pick some and copies them out without re-encoding.",
		Authors: []*cli.Author{
			{
				Name: "Gian Luca Dalla Torre",
			},
		},
		Version:   Version,
		Action:    extractCommand,
		ArgsUsage: "[MEDIA_FILE]",
		Flags:     extractFlags(),
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "Show the subtitle tracks of a media file",
				ArgsUsage: "[MEDIA_FILE]",
				Flags:     commonFlags(),
				Action:    listCommand,
			},
		},
	}
}

// main is the entry point of the application.
func main() {
	cli.VersionPrinter = versionPrinter

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		errorStyle := color.New(color.FgRed)
		errorStyle.Fprintf(os.Stderr, "⚠️ Error: %v\n", err)
		os.Exit(1)
	}
}
