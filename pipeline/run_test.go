package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrcfetch/lyrics"
	"lrcfetch/metadata"
	"lrcfetch/model"
	"lrcfetch/store"
)

type stubExtractor struct {
	identity model.TrackIdentity
	err      error
}

func (s stubExtractor) Extract(string) (model.TrackIdentity, error) {
	return s.identity, s.err
}

type stubResolver struct {
	result    model.SearchResult
	searchErr error
	searches  int
}

func (s *stubResolver) Search(model.TrackIdentity) (model.SearchResult, error) {
	s.searches++
	return s.result, s.searchErr
}

func (s *stubResolver) ExtractPayload(result model.SearchResult) (model.LyricPayload, error) {
	return (&lyrics.Client{}).ExtractPayload(result)
}

type failingStore struct {
	store.Store
}

func (failingStore) Write(string, string) error {
	return errors.New("disk full")
}

func writeTrack(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, root, "one.mp3")
	writeTrack(t, root, "two.MP3")
	writeTrack(t, root, filepath.Join("album", "three.mp3"))
	writeTrack(t, root, "ignored.flac")
	writeTrack(t, root, "ignored.lrc")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	files, err := Discover(root)

	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, file := range files {
		assert.Contains(t, []string{"one.mp3", "two.MP3", "three.mp3"}, filepath.Base(file))
	}
}

func TestDiscoverEmptyRoot(t *testing.T) {
	files, err := Discover(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestProcessOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		extractor model.Extractor
		resolver  model.Resolver
		store     model.Store
		expected  Outcome
	}{
		{
			name:      "metadata failure",
			extractor: stubExtractor{err: metadata.ErrMetadataUnavailable},
			resolver:  &stubResolver{},
			store:     store.Store{},
			expected:  MetadataFailed,
		},
		{
			name:      "search failure",
			extractor: stubExtractor{identity: model.TrackIdentity{Artist: "A", Title: "B"}},
			resolver:  &stubResolver{searchErr: lyrics.ErrNoResult},
			store:     store.Store{},
			expected:  LyricsNotFound,
		},
		{
			name:      "result without lyric text",
			extractor: stubExtractor{identity: model.TrackIdentity{Artist: "A", Title: "B"}},
			resolver:  &stubResolver{result: model.SearchResult{ArtistName: "A", TrackName: "B"}},
			store:     store.Store{},
			expected:  LyricsNotFound,
		},
		{
			name:      "write failure",
			extractor: stubExtractor{identity: model.TrackIdentity{Artist: "A", Title: "B"}},
			resolver:  &stubResolver{result: model.SearchResult{PlainLyrics: "text"}},
			store:     failingStore{},
			expected:  WriteFailed,
		},
		{
			name:      "success",
			extractor: stubExtractor{identity: model.TrackIdentity{Artist: "A", Title: "B"}},
			resolver:  &stubResolver{result: model.SearchResult{SyncedLyrics: "[00:01.00]Hi"}},
			store:     store.Store{},
			expected:  Success,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &Runner{Extractor: tt.extractor, Resolver: tt.resolver, Store: tt.store}
			path := writeTrack(t, t.TempDir(), "song.mp3")

			assert.Equal(t, tt.expected, runner.Process(path))
		})
	}
}

func TestSummaryCounts(t *testing.T) {
	var summary Summary
	for _, outcome := range []Outcome{Success, Success, Skipped, MetadataFailed, LyricsNotFound, WriteFailed} {
		summary.record(outcome)
	}

	assert.Equal(t, Summary{Succeeded: 2, Skipped: 1, Failed: 3, Total: 6}, summary)
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	track := writeTrack(t, root, "The Band - Song X.mp3")

	resolver := &stubResolver{result: model.SearchResult{
		ArtistName:   "The Band",
		TrackName:    "Song X",
		SyncedLyrics: "[00:01.00]Hello",
	}}
	runner := &Runner{
		Extractor: metadata.Extractor{},
		Resolver:  resolver,
		Store:     store.Store{},
	}

	summary, err := runner.Run(root)

	require.NoError(t, err)
	assert.Equal(t, Summary{Succeeded: 1, Total: 1}, summary)

	content, err := os.ReadFile(store.SidecarPath(track))
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Hello", string(content))

	// Second run without force: everything skipped, file untouched, no
	// further network traffic.
	summary, err = runner.Run(root)

	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 1, Total: 1}, summary)
	assert.Equal(t, 1, resolver.searches)

	content, err = os.ReadFile(store.SidecarPath(track))
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Hello", string(content))
}

func TestRunForceOverwrites(t *testing.T) {
	root := t.TempDir()
	track := writeTrack(t, root, "The Band - Song X.mp3")
	require.NoError(t, os.WriteFile(store.SidecarPath(track), []byte("stale lyrics from long ago"), 0o644))

	runner := &Runner{
		Extractor: metadata.Extractor{},
		Resolver:  &stubResolver{result: model.SearchResult{SyncedLyrics: "[00:01.00]Hello"}},
		Store:     store.Store{},
		Force:     true,
	}

	summary, err := runner.Run(root)

	require.NoError(t, err)
	assert.Equal(t, Summary{Succeeded: 1, Total: 1}, summary)

	content, err := os.ReadFile(store.SidecarPath(track))
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00]Hello", string(content))
}

func TestRunEmptyRoot(t *testing.T) {
	runner := &Runner{
		Extractor: metadata.Extractor{},
		Resolver:  &stubResolver{},
		Store:     store.Store{},
	}

	summary, err := runner.Run(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestRunFailuresDoNotAbortBatch(t *testing.T) {
	root := t.TempDir()
	writeTrack(t, root, "First - Track.mp3")
	writeTrack(t, root, "Second - Track.mp3")

	runner := &Runner{
		Extractor: metadata.Extractor{},
		Resolver:  &stubResolver{searchErr: lyrics.ErrNoResult},
		Store:     store.Store{},
	}

	summary, err := runner.Run(root)

	require.NoError(t, err)
	assert.Equal(t, Summary{Failed: 2, Total: 2}, summary)
}
