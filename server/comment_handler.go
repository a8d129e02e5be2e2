package server

import (
	"encoding/json"
	"net/http"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"
)

// RobotCommentHandler returns a generated robot comment for the current
// song. The endpoint always answers 200: generation failures degrade to
// the fallback comment with success=false.
func (h *APIHandler) RobotCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req model.RobotCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.comments.Comment(r.Context(), req.SongTitle, req.Lyrics)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"comment": comment,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"comment": comment,
	})
}
