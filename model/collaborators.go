package model

// Extractor resolves a track identity from an audio file on disk
type Extractor interface {
	Extract(path string) (TrackIdentity, error)
}

// Resolver maps a track identity to lyric text via a remote service
type Resolver interface {
	Search(identity TrackIdentity) (SearchResult, error)
	ExtractPayload(result SearchResult) (LyricPayload, error)
}

// Store persists lyric text alongside the source track
type Store interface {
	Exists(trackPath string) bool
	Write(trackPath string, text string) error
}
