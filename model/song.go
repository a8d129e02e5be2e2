package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// BSON field names for the Song document. The resolver and the import
// handler build partial $set updates from these, so they must stay in
// sync with the struct tags below.
const (
	FieldAudioBlob = "audio_blob"
	FieldLyricBlob = "lyric_blob"
	FieldAudioURL  = "audio_url"
	FieldLyricURL  = "lyric_url"
)

// Song is a song metadata document. Blob paths name objects in the
// bucket (sounds/... or lyrics/...); the signed URL fields hold cached
// time-limited URLs that may be expired and must be validated before use.
type Song struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	AudioBlobPath  string             `bson:"audio_blob,omitempty" json:"audioBlobPath,omitempty"`
	LyricBlobPath  string             `bson:"lyric_blob,omitempty" json:"lyricBlobPath,omitempty"`
	AudioSignedURL string             `bson:"audio_url,omitempty" json:"-"`
	LyricSignedURL string             `bson:"lyric_url,omitempty" json:"-"`
	HasLyrics      bool               `bson:"has_lyrics" json:"hasLyrics"`
}

// SongSummary is the song list entry returned by the API. AudioURL points
// back at this API's own redirect endpoint, never at the object store.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	AudioURL  string `json:"audioUrl"`
	HasLyrics bool   `json:"hasLyrics"`
}

// LyricLine is one timed line of a parsed lyric file.
type LyricLine struct {
	TimestampMs int64  `json:"timestampMs"`
	Text        string `json:"text"`
}
