package metadata

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"lrcfetch/model"
)

// ErrMetadataUnavailable indicates neither tags nor the filename yielded a
// usable title.
var ErrMetadataUnavailable = errors.New("no usable title in tags or filename")

// unknownArtist is the sentinel used when no artist can be determined.
const unknownArtist = "Unknown"

// A strategy produces a (possibly partial) identity for a track file.
type strategy func(path string) (model.TrackIdentity, bool)

// Strategies are tried in order; the first to produce a value for a field
// wins that field.
var strategies = []strategy{fromTags, fromFilenameSplit, fromSentinel}

// Extractor reads track identities from embedded tags, falling back to
// filename parsing.
type Extractor struct{}

// Extract resolves the artist and title for the given audio file.
func (Extractor) Extract(path string) (model.TrackIdentity, error) {
	var identity model.TrackIdentity

	for _, s := range strategies {
		candidate, ok := s(path)
		if !ok {
			continue
		}

		if identity.Artist == "" {
			identity.Artist = candidate.Artist
		}
		if identity.Title == "" {
			identity.Title = candidate.Title
		}

		if identity.Artist != "" && identity.Title != "" {
			return identity, nil
		}
	}

	return model.TrackIdentity{}, ErrMetadataUnavailable
}

// fromTags reads the embedded tag fields. Artist falls back to the album
// artist. Unparseable or missing tags are not an error here; later
// strategies get a go.
func fromTags(path string) (model.TrackIdentity, bool) {
	file, err := os.Open(path)
	if err != nil {
		slog.Debug("Could not open file for tag reading", "file", path, "error", err)
		return model.TrackIdentity{}, false
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		slog.Debug("No readable tags", "file", path, "error", err)
		return model.TrackIdentity{}, false
	}

	artist := strings.TrimSpace(metadata.Artist())
	if artist == "" {
		artist = strings.TrimSpace(metadata.AlbumArtist())
	}

	identity := model.TrackIdentity{
		Artist: artist,
		Title:  strings.TrimSpace(metadata.Title()),
	}
	return identity, identity.Artist != "" || identity.Title != ""
}

// fromFilenameSplit parses an "Artist - Title" filename.
func fromFilenameSplit(path string) (model.TrackIdentity, bool) {
	artist, title, found := strings.Cut(stem(path), " - ")
	if !found {
		return model.TrackIdentity{}, false
	}

	return model.TrackIdentity{
		Artist: strings.TrimSpace(artist),
		Title:  strings.TrimSpace(title),
	}, true
}

// fromSentinel treats the whole filename as the title. The artist sentinel
// means extraction only ever fails on an empty title.
func fromSentinel(path string) (model.TrackIdentity, bool) {
	return model.TrackIdentity{Artist: unknownArtist, Title: stem(path)}, true
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var _ model.Extractor = Extractor{}
