package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/core/resolver"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	maxImportFormMemory = 32 << 20 // 32MB held in memory while parsing

	soundPrefix = "sounds/"
	lyricPrefix = "lyrics/"
)

// passwordVerifyRequest is the body of POST /api/verify-import-password.
type passwordVerifyRequest struct {
	Password string `json:"password"`
}

// VerifyImportPasswordHandler checks the shared import password.
func (h *APIHandler) VerifyImportPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req passwordVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.cfg.ImportPassword == "" || req.Password != h.cfg.ImportPassword {
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password verified successfully",
	})
}

// ImportTrackHandler uploads a track's audio (and optional lyric) file to
// the object store and records its metadata.
//
// Expected multipart form fields:
// - title: track title (required)
// - sound_file: the audio file (required)
// - lyrics_file: the LRC lyric file (optional)
//
// The Song document is inserted before the uploads start; when an upload
// fails the document is left behind rather than rolled back.
func (h *APIHandler) ImportTrackHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse multipart form: %v", err))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "Missing 'title' in form")
		return
	}

	soundFile, soundHeader, err := r.FormFile("sound_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'sound_file' in form")
		return
	}
	defer soundFile.Close()

	var (
		lyricsFile   multipart.File
		lyricsHeader *multipart.FileHeader
	)
	lyricsFile, lyricsHeader, err = r.FormFile("lyrics_file")
	switch {
	case err == nil:
		defer lyricsFile.Close()
	case errors.Is(err, http.ErrMissingFile):
		// lyric file is optional
	default:
		writeError(w, http.StatusBadRequest, "Unreadable 'lyrics_file' in form")
		return
	}
	hasLyrics := lyricsHeader != nil && lyricsHeader.Filename != ""

	logger.Info("Importing track",
		logger.String("title", title),
		logger.String("soundFile", soundHeader.Filename),
		logger.Bool("hasLyrics", hasLyrics))

	// Insert the document first with empty blob/url fields, matching the
	// asset lifecycle: created empty, then filled in as uploads complete.
	songID, err := h.songRepo.CreateSong(r.Context(), &model.Song{
		Title:     title,
		HasLyrics: hasLyrics,
	})
	if err != nil {
		logger.Error("Import failed creating song document", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Import failed")
		return
	}

	soundBlobPath := soundPrefix + soundHeader.Filename
	if err := h.stageAndUpload(r, soundFile, soundHeader.Filename, soundBlobPath); err != nil {
		logger.Error("Import failed uploading audio",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Import failed")
		return
	}

	var lyricBlobPath string
	if hasLyrics {
		lyricBlobPath = lyricPrefix + lyricsHeader.Filename
		if err := h.stageAndUpload(r, lyricsFile, lyricsHeader.Filename, lyricBlobPath); err != nil {
			logger.Error("Import failed uploading lyrics",
				logger.String("songId", songID),
				logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Import failed")
			return
		}
	}

	// Generate the initial signed URLs and persist blob paths + URLs in
	// one combined update.
	fields := map[string]interface{}{}

	audioURL, err := h.store.PresignedGetURL(r.Context(), soundBlobPath, resolver.URLTTL)
	if err != nil {
		logger.Error("Import failed signing audio URL",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Import failed")
		return
	}
	fields[model.FieldAudioBlob] = soundBlobPath
	fields[model.FieldAudioURL] = audioURL

	var lyricURL string
	if lyricBlobPath != "" {
		lyricURL, err = h.store.PresignedGetURL(r.Context(), lyricBlobPath, resolver.URLTTL)
		if err != nil {
			logger.Error("Import failed signing lyric URL",
				logger.String("songId", songID),
				logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Import failed")
			return
		}
		fields[model.FieldLyricBlob] = lyricBlobPath
		fields[model.FieldLyricURL] = lyricURL
	}

	if err := h.songRepo.UpdateSongFields(r.Context(), songID, fields); err != nil {
		logger.Error("Import failed persisting blob paths",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Import failed")
		return
	}

	response := map[string]interface{}{
		"success":       true,
		"message":       "Track imported successfully",
		"title":         title,
		"songId":        songID,
		"uploadedSound": soundHeader.Filename,
		"hasLyrics":     hasLyrics,
		"audioUrl":      audioURL,
	}
	if hasLyrics {
		response["uploadedLyrics"] = lyricsHeader.Filename
		response["lyricsUrl"] = lyricURL
	}
	writeJSON(w, http.StatusOK, response)
}

// stageAndUpload copies an uploaded form file to a scoped temporary
// location, uploads it to the object store, and removes the temp file
// whether or not the upload succeeded.
func (h *APIHandler) stageAndUpload(r *http.Request, file multipart.File, filename, objectName string) error {
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(filename))
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpPath)

	_, err = io.Copy(out, file)
	closeErr := out.Close()
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filename, err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to stage %s: %w", filename, closeErr)
	}

	return h.store.UploadFile(r.Context(), objectName, tmpPath)
}

// DeleteTrackHandler removes a track's blobs and its metadata document.
// Blob deletions are best-effort; removing the metadata record is the
// operation's primary success criterion.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["songId"]

	song, err := h.songRepo.GetSongByID(r.Context(), songID)
	if err != nil {
		logger.Error("Delete failed loading song",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Delete failed")
		return
	}
	if song == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	if song.AudioBlobPath != "" {
		if err := h.store.RemoveObject(r.Context(), song.AudioBlobPath); err != nil {
			logger.Warn("Could not delete audio blob",
				logger.String("songId", songID),
				logger.String("blob", song.AudioBlobPath),
				logger.ErrorField(err))
		}
	}
	if song.LyricBlobPath != "" {
		if err := h.store.RemoveObject(r.Context(), song.LyricBlobPath); err != nil {
			logger.Warn("Could not delete lyric blob",
				logger.String("songId", songID),
				logger.String("blob", song.LyricBlobPath),
				logger.ErrorField(err))
		}
	}

	deleted, err := h.songRepo.DeleteSong(r.Context(), songID)
	if err != nil || deleted == 0 {
		logger.Error("Delete failed removing song document",
			logger.String("songId", songID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete track from database")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"message":          "Track deleted successfully",
		"deletedSongId":    songID,
		"deletedAudioBlob": song.AudioBlobPath,
		"deletedLyricBlob": song.LyricBlobPath,
	})
}
