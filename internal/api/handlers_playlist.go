package api

import (
	"errors"
	"net/http"

	"github.com/pgulley/festline/internal/playlist"
)

// handleListPlaylists returns all saved playlists, newest first.
// GET /api/v1/playlists
func (r *Router) handleListPlaylists(w http.ResponseWriter, req *http.Request) {
	playlists, err := r.playlists.List(req.Context())
	if err != nil {
		r.logger.Error("listing playlists", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"playlists": playlists,
		"total":     len(playlists),
	})
}

// handleGetPlaylist returns one playlist with its entries in order.
// GET /api/v1/playlists/{id}
func (r *Router) handleGetPlaylist(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	pl, err := r.playlists.GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, playlist.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		r.logger.Error("getting playlist", "playlist_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, pl)
}

// handleDeletePlaylist removes a playlist and its entries.
// DELETE /api/v1/playlists/{id}
func (r *Router) handleDeletePlaylist(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	if err := r.playlists.Delete(req.Context(), id); err != nil {
		if errors.Is(err, playlist.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		r.logger.Error("deleting playlist", "playlist_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleExportPlaylist writes the playlist to the export directory.
// POST /api/v1/playlists/{id}/export
func (r *Router) handleExportPlaylist(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	pl, err := r.playlists.GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, playlist.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		r.logger.Error("getting playlist for export", "playlist_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	path, err := r.exporter.Export(pl)
	if err != nil {
		var noTracks *playlist.ErrNoExportableTracks
		if errors.As(err, &noTracks) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": noTracks.Error()})
			return
		}
		r.logger.Error("exporting playlist", "playlist_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "exported",
		"path":   path,
	})
}
