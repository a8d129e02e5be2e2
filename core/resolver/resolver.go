// Package resolver returns currently valid signed URLs for a song's
// stored assets, regenerating and persisting a fresh URL whenever the
// cached one has expired or is unreachable.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"
)

const (
	// URLTTL is the validity window of newly generated signed URLs.
	URLTTL = 15 * time.Minute
	// probeTimeout bounds the existence probe against a cached URL.
	probeTimeout = 10 * time.Second
)

var (
	// ErrSongNotFound means there is no song document with the given id.
	ErrSongNotFound = errors.New("song not found")
	// ErrMissingAsset means the song has no blob path for the requested
	// asset and none could be derived from a cached URL.
	ErrMissingAsset = errors.New("no blob path for asset")
	// ErrGenerationFailed wraps signed-URL generation errors.
	ErrGenerationFailed = errors.New("signed url generation failed")
)

// AssetKind selects which of a song's assets to resolve.
type AssetKind int

const (
	AudioAsset AssetKind = iota
	LyricAsset
)

func (k AssetKind) String() string {
	if k == LyricAsset {
		return "lyric"
	}
	return "audio"
}

// fields returns the document field names holding the cached URL and the
// blob path for this asset.
func (k AssetKind) fields() (urlField, blobField string) {
	if k == LyricAsset {
		return model.FieldLyricURL, model.FieldLyricBlob
	}
	return model.FieldAudioURL, model.FieldAudioBlob
}

// values reads the cached URL and blob path for this asset from a song.
func (k AssetKind) values(s *model.Song) (urlVal, blobVal string) {
	if k == LyricAsset {
		return s.LyricSignedURL, s.LyricBlobPath
	}
	return s.AudioSignedURL, s.AudioBlobPath
}

// SongStore is the slice of the song repository the resolver needs.
type SongStore interface {
	GetSongByID(ctx context.Context, id string) (*model.Song, error)
	UpdateSongFields(ctx context.Context, id string, fields map[string]interface{}) error
}

// URLSigner issues time-limited signed GET URLs for stored objects.
type URLSigner interface {
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Resolver checks and refreshes signed asset URLs.
type Resolver struct {
	store  SongStore
	signer URLSigner
	probe  *http.Client
}

// New creates a Resolver backed by the given store and signer.
func New(store SongStore, signer URLSigner) *Resolver {
	return &Resolver{
		store:  store,
		signer: signer,
		probe:  &http.Client{Timeout: probeTimeout},
	}
}

// Resolve returns a currently valid signed URL for the song's asset along
// with the song document. The cached URL is returned unchanged when a HEAD
// probe confirms it still works; otherwise a fresh URL is generated and
// persisted. Concurrent resolves on the same song may both regenerate;
// last write wins and either URL is valid.
func (r *Resolver) Resolve(ctx context.Context, songID string, kind AssetKind) (string, *model.Song, error) {
	song, err := r.store.GetSongByID(ctx, songID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load song %s: %w", songID, err)
	}
	if song == nil {
		return "", nil, ErrSongNotFound
	}

	urlField, blobField := kind.fields()
	currentURL, blobPath := kind.values(song)

	// Legacy documents carry a signed URL but no blob path. Derive the
	// path from the URL and persist it so later resolves skip this step.
	// Best-effort only: a parse failure just falls through.
	if blobPath == "" && currentURL != "" {
		if derived, ok := blobPathFromSignedURL(currentURL); ok {
			blobPath = derived
			if err := r.store.UpdateSongFields(ctx, songID, map[string]interface{}{blobField: derived}); err != nil {
				logger.Warn("Failed to persist repaired blob path",
					logger.String("songId", songID),
					logger.String("field", blobField),
					logger.ErrorField(err))
			} else {
				logger.Info("Repaired missing blob path from cached URL",
					logger.String("songId", songID),
					logger.String("blobPath", derived))
			}
		}
	}

	if blobPath == "" {
		return "", nil, fmt.Errorf("%w: song %s has no %s blob", ErrMissingAsset, songID, kind)
	}

	// Fast path: the cached URL still answers, so no regeneration and no
	// store write are needed.
	if currentURL != "" && r.urlAlive(ctx, currentURL) {
		return currentURL, song, nil
	}

	freshURL, err := r.signer.PresignedGetURL(ctx, blobPath, URLTTL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := r.store.UpdateSongFields(ctx, songID, map[string]interface{}{urlField: freshURL}); err != nil {
		return "", nil, fmt.Errorf("failed to persist signed url for song %s: %w", songID, err)
	}

	logger.Info("Signed URL regenerated",
		logger.String("songId", songID),
		logger.String("asset", kind.String()),
		logger.Duration("ttl", URLTTL))
	return freshURL, song, nil
}

// urlAlive probes a URL with a metadata-only HEAD request. Any failure,
// network error, timeout or non-200 status, counts as expired.
func (r *Resolver) urlAlive(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := r.probe.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// blobPathFromSignedURL extracts a blob path from a path-style signed URL
// of the form http(s)://host/bucket/blob/path?signature. The segment
// after the bucket name is percent-decoded and returned.
func blobPathFromSignedURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	trimmed := strings.TrimPrefix(u.EscapedPath(), "/")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}

	decoded, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", false
	}
	return decoded, true
}
