package model

// SearchResult is a single candidate returned by the lyrics search API.
// Fields the API may send but we never use are ignored on decode.
type SearchResult struct {
	ArtistName   string `json:"artistName"`
	TrackName    string `json:"trackName"`
	AlbumName    string `json:"albumName"`
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
}

// LyricPayload is the lyric text chosen from a search result. Synced
// indicates LRC-timestamped text rather than plain lyrics.
type LyricPayload struct {
	Text   string
	Synced bool
}
