package pipeline

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"lrcfetch/model"
)

// Outcome is the terminal state reached for one track file. Each file gets
// exactly one attempt; there are no retries.
type Outcome int

const (
	Success Outcome = iota
	Skipped
	MetadataFailed
	LyricsNotFound
	WriteFailed
)

// Summary aggregates outcomes across one run.
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
	Total     int
}

func (s *Summary) record(outcome Outcome) {
	s.Total++
	switch outcome {
	case Success:
		s.Succeeded++
	case Skipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

const audioExtension = ".mp3"

// Runner applies the extract/resolve/persist pipeline to every track file
// under a root directory, sequentially, in discovery order.
type Runner struct {
	Extractor model.Extractor
	Resolver  model.Resolver
	Store     model.Store

	// Force disables the skip-existing check, overwriting sidecars.
	Force bool
}

// Run processes every audio file under root and returns the tally. A track's
// failure never aborts the batch; finding no files at all is a normal,
// empty result.
func (r *Runner) Run(root string) (Summary, error) {
	files, err := Discover(root)
	if err != nil {
		return Summary{}, err
	}

	if len(files) == 0 {
		slog.Info("No audio files found", "root", root)
		return Summary{}, nil
	}

	slog.Info("Found audio files", "count", len(files), "root", root)

	var summary Summary
	for i, file := range files {
		slog.Info("Processing",
			"progress", fmt.Sprintf("%d/%d", i+1, len(files)),
			"file", filepath.Base(file),
		)
		summary.record(r.Process(file))
	}

	return summary, nil
}

// Discover lists regular files under root with the audio extension
// (case-insensitive), in traversal order.
func Discover(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(path), audioExtension) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

// Process runs one track through the pipeline and reports its terminal
// state. Every failure is logged with a short reason as it happens.
func (r *Runner) Process(path string) Outcome {
	name := filepath.Base(path)

	if !r.Force && r.Store.Exists(path) {
		slog.Info("Skipping, lyrics already exist", "file", name)
		return Skipped
	}

	identity, err := r.Extractor.Extract(path)
	if err != nil {
		slog.Warn("Could not extract metadata", "file", name, "error", err)
		return MetadataFailed
	}

	slog.Debug("Extracted identity", "file", name, "artist", identity.Artist, "title", identity.Title)

	result, err := r.Resolver.Search(identity)
	if err != nil {
		slog.Warn("No lyrics found", "artist", identity.Artist, "title", identity.Title, "error", err)
		return LyricsNotFound
	}

	payload, err := r.Resolver.ExtractPayload(result)
	if err != nil {
		slog.Warn("Result carries no lyrics", "artist", identity.Artist, "title", identity.Title, "error", err)
		return LyricsNotFound
	}

	if err := r.Store.Write(path, payload.Text); err != nil {
		slog.Warn("Could not write lyrics", "file", name, "error", err)
		return WriteFailed
	}

	slog.Info("Saved lyrics", "file", name, "synced", payload.Synced)
	return Success
}
