package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"

	"lrcfetch/lyrics"
	"lrcfetch/metadata"
	"lrcfetch/pipeline"
	"lrcfetch/store"
)

var (
	force = flag.Bool("force", false, "Fetch lyrics even if a .lrc file already exists")
	debug = flag.Bool("debug", false, "Enable verbose diagnostic output")
)

func main() {
	envflag.Parse()
	_ = slogflags.Logger(slogflags.WithSetDefault(true))

	if *debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		slog.Debug("Debug mode enabled")
	}

	if flag.NArg() != 1 {
		slog.Error("Usage: lrcfetch [--force] [--debug] <music folder>")
		os.Exit(1)
	}

	root := flag.Arg(0)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		slog.Error("Not a directory", "path", root)
		os.Exit(1)
	}

	runner := &pipeline.Runner{
		Extractor: metadata.Extractor{},
		Resolver:  lyrics.NewClient(lyrics.DefaultBaseURL, *debug),
		Store:     store.Store{},
		Force:     *force,
	}

	summary, err := runner.Run(root)
	if err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Run complete",
		"successful", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"total", summary.Total,
	)
}
