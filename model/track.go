package model

// TrackIdentity is the (artist, title) pair resolved for one audio file
type TrackIdentity struct {
	Artist string
	Title  string
}
