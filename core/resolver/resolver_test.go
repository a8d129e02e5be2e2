package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	songs   map[string]*model.Song
	updates []map[string]interface{}
	getErr  error
}

func (f *fakeStore) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.songs[id], nil
}

func (f *fakeStore) UpdateSongFields(ctx context.Context, id string, fields map[string]interface{}) error {
	f.updates = append(f.updates, fields)
	return nil
}

type fakeSigner struct {
	url   string
	err   error
	calls int
}

func (f *fakeSigner) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestResolveCachedURLStillValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cached := srv.URL + "/tunify/sounds/track.mp3?sig=old"
	store := &fakeStore{songs: map[string]*model.Song{
		"s1": {Title: "Track", AudioBlobPath: "sounds/track.mp3", AudioSignedURL: cached},
	}}
	signer := &fakeSigner{url: "http://fresh.example/new"}

	got, song, err := New(store, signer).Resolve(context.Background(), "s1", AudioAsset)
	require.NoError(t, err)
	assert.Equal(t, cached, got, "valid cached URL must be returned unchanged")
	assert.Equal(t, "Track", song.Title)
	assert.Empty(t, store.updates, "fast path must not write to the store")
	assert.Zero(t, signer.calls, "fast path must not regenerate")
}

func TestResolveRegeneratesOnProbeFailure(t *testing.T) {
	tests := []struct {
		name  string
		probe func(t *testing.T) string // returns the cached URL to use
	}{
		{
			name: "non-200 status",
			probe: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusForbidden)
				}))
				t.Cleanup(srv.Close)
				return srv.URL + "/tunify/sounds/track.mp3?sig=expired"
			},
		},
		{
			name: "unreachable host",
			probe: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				srv.Close() // connection refused from here on
				return srv.URL + "/tunify/sounds/track.mp3?sig=dead"
			},
		},
		{
			name: "no cached URL at all",
			probe: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{songs: map[string]*model.Song{
				"s1": {Title: "Track", AudioBlobPath: "sounds/track.mp3", AudioSignedURL: tt.probe(t)},
			}}
			signer := &fakeSigner{url: "http://fresh.example/sounds/track.mp3?sig=new"}

			got, _, err := New(store, signer).Resolve(context.Background(), "s1", AudioAsset)
			require.NoError(t, err)
			assert.Equal(t, signer.url, got)
			assert.Equal(t, 1, signer.calls)
			require.Len(t, store.updates, 1, "regeneration must persist the new URL")
			assert.Equal(t, signer.url, store.updates[0][model.FieldAudioURL])
		})
	}
}

func TestResolveRepairsLegacyBlobPath(t *testing.T) {
	// Legacy document: signed URL present, blob path never recorded. The
	// URL itself is expired, so after the repair a fresh one is generated.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := &fakeStore{songs: map[string]*model.Song{
		"legacy": {Title: "Old", LyricSignedURL: srv.URL + "/tunify/lyrics/Mat%20Ket%20Noi.lrc?sig=stale"},
	}}
	signer := &fakeSigner{url: "http://fresh.example/lyrics"}

	got, _, err := New(store, signer).Resolve(context.Background(), "legacy", LyricAsset)
	require.NoError(t, err)
	assert.Equal(t, signer.url, got)

	require.Len(t, store.updates, 2)
	assert.Equal(t, "lyrics/Mat Ket Noi.lrc", store.updates[0][model.FieldLyricBlob],
		"blob path must be derived from the URL and percent-decoded")
	assert.Equal(t, signer.url, store.updates[1][model.FieldLyricURL])
}

func TestResolveMissingAsset(t *testing.T) {
	store := &fakeStore{songs: map[string]*model.Song{
		"s1": {Title: "No lyrics here", AudioBlobPath: "sounds/track.mp3"},
	}}

	_, _, err := New(store, &fakeSigner{}).Resolve(context.Background(), "s1", LyricAsset)
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestResolveSongNotFound(t *testing.T) {
	store := &fakeStore{songs: map[string]*model.Song{}}

	_, _, err := New(store, &fakeSigner{}).Resolve(context.Background(), "nope", AudioAsset)
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestResolveGenerationFailed(t *testing.T) {
	store := &fakeStore{songs: map[string]*model.Song{
		"s1": {Title: "Track", AudioBlobPath: "sounds/track.mp3"},
	}}
	signer := &fakeSigner{err: fmt.Errorf("credentials rejected")}

	_, _, err := New(store, signer).Resolve(context.Background(), "s1", AudioAsset)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestResolveStoreError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection reset")}

	_, _, err := New(store, &fakeSigner{}).Resolve(context.Background(), "s1", AudioAsset)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSongNotFound)
}

func TestBlobPathFromSignedURL(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
		ok     bool
	}{
		{
			name:   "plain path-style URL",
			rawURL: "http://minio.local:9000/tunify/sounds/track.mp3?X-Amz-Signature=abc",
			want:   "sounds/track.mp3",
			ok:     true,
		},
		{
			name:   "percent-encoded segments",
			rawURL: "https://minio.local/tunify/lyrics/Mat%20Ket%20Noi.lrc?sig=1",
			want:   "lyrics/Mat Ket Noi.lrc",
			ok:     true,
		},
		{
			name:   "bucket only, no object segment",
			rawURL: "http://minio.local/tunify",
			ok:     false,
		},
		{
			name:   "trailing slash after bucket",
			rawURL: "http://minio.local/tunify/",
			ok:     false,
		},
		{
			name:   "not a URL",
			rawURL: "::::",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := blobPathFromSignedURL(tt.rawURL)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
