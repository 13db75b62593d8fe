package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lrcfetch/model"
)

const lyricExtension = ".lrc"

// Store writes lyric sidecar files next to their source tracks.
type Store struct{}

// SidecarPath derives the lyric file path for a track by swapping its
// extension.
func SidecarPath(trackPath string) string {
	return strings.TrimSuffix(trackPath, filepath.Ext(trackPath)) + lyricExtension
}

// Exists reports whether a lyric sidecar already exists for the track.
func (Store) Exists(trackPath string) bool {
	_, err := os.Stat(SidecarPath(trackPath))
	return err == nil
}

// Write stores text in the track's sidecar file, replacing any previous
// content.
func (Store) Write(trackPath string, text string) error {
	path := SidecarPath(trackPath)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

var _ model.Store = Store{}
