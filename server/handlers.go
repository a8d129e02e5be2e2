package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/commentary"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/lyrics"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/resolver"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/repository"

	"github.com/gorilla/mux"
)

const apiVersion = "1.0.0"

// ObjectStore is the slice of the storage client the handlers need.
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName, filePath string) error
	RemoveObject(ctx context.Context, objectName string) error
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// APIHandler holds dependencies for HTTP handlers.
type APIHandler struct {
	songRepo repository.SongRepository
	store    ObjectStore
	resolver *resolver.Resolver
	comments *commentary.Generator
	cfg      *config.Config
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(
	songRepo repository.SongRepository,
	store ObjectStore,
	res *resolver.Resolver,
	comments *commentary.Generator,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		songRepo: songRepo,
		store:    store,
		resolver: res,
		comments: comments,
		cfg:      cfg,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// resolveStatus maps resolver errors to HTTP statuses.
func resolveStatus(err error) int {
	if errors.Is(err, resolver.ErrSongNotFound) || errors.Is(err, resolver.ErrMissingAsset) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// HealthHandler is the root health check.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Music Player API is running",
		"version": apiVersion,
	})
}

// GetSongsHandler lists all songs. Audio links route back through this
// API's redirect endpoint so clients never hold raw signed URLs.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songRepo.GetAllSongs(r.Context())
	if err != nil {
		logger.Error("Failed to list songs", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to get songs")
		return
	}

	base := h.cfg.PublicBaseURL()
	summaries := make([]model.SongSummary, 0, len(songs))
	for _, song := range songs {
		id := song.ID.Hex()
		summaries = append(summaries, model.SongSummary{
			ID:        id,
			Title:     song.Title,
			AudioURL:  base + "/api/audio/" + id,
			HasLyrics: song.HasLyrics,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songs": summaries,
		"total": len(summaries),
	})
}

// DebugSongsHandler dumps the raw song documents.
func (h *APIHandler) DebugSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songRepo.GetAllSongs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songs": songs,
		"total": len(songs),
	})
}

// GetAudioHandler redirects to a freshly valid signed URL for the song's
// audio blob. Redirecting avoids proxying large audio payloads through
// the API process.
func (h *APIHandler) GetAudioHandler(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["songId"]

	validURL, _, err := h.resolver.Resolve(r.Context(), songID, resolver.AudioAsset)
	if err != nil {
		logger.Warn("Audio resolve failed",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, resolveStatus(err), "Failed to get audio for song")
		return
	}

	http.Redirect(w, r, validURL, http.StatusFound)
}

// GetLyricsHandler fetches the song's lyric file and returns it parsed
// into timed lines.
func (h *APIHandler) GetLyricsHandler(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["songId"]

	validURL, _, err := h.resolver.Resolve(r.Context(), songID, resolver.LyricAsset)
	if err != nil {
		logger.Warn("Lyrics resolve failed",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, resolveStatus(err), "Failed to get lyrics for song")
		return
	}

	content, err := lyrics.FetchText(r.Context(), validURL)
	if err != nil {
		logger.Error("Lyric fetch failed",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to load lyrics file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songId": songID,
		"lyrics": lyrics.Parse(content),
	})
}
