package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pgulley/festline/internal/playlist"
)

// handleCreateScan runs OCR text through the pipeline and, when the run
// produced playable entries, saves the resulting playlist.
// POST /api/v1/scans
func (r *Router) handleCreateScan(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Text         string `json:"text"`
		Title        string `json:"title"`
		FestivalName string `json:"festival_name"`
		Venue        string `json:"venue"`
		DateRange    string `json:"date_range"`
		CastSummary  string `json:"cast_summary"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	result, err := r.pipeline.Run(req.Context(), body.Text)
	if err != nil {
		r.logger.Error("pipeline run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if result.Empty() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "no festival lineup recognized",
			"scan":       result.Scan,
			"candidates": result.Candidates,
		})
		return
	}

	title := body.Title
	if title == "" {
		title = body.FestivalName
	}
	if title == "" {
		title = "Festival Playlist"
	}
	meta := playlist.Metadata{
		FestivalName: body.FestivalName,
		Venue:        body.Venue,
		DateRange:    body.DateRange,
		CastSummary:  body.CastSummary,
	}

	pl, err := r.pipeline.SavePlaylist(req.Context(), title, meta, result)
	if err != nil {
		r.logger.Error("saving playlist failed", "scan_id", result.Scan.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"scan":       result.Scan,
		"candidates": result.Candidates,
		"matches":    result.Matches,
		"playlist":   pl,
	})
}

// handleGetScan returns a stored scan with its artist matches.
// GET /api/v1/scans/{id}
func (r *Router) handleGetScan(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	sc, err := r.scans.GetByID(req.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scan not found"})
		return
	}

	matches, err := r.scans.MatchesForScan(req.Context(), id)
	if err != nil {
		r.logger.Error("listing scan matches", "scan_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"scan":    sc,
		"matches": matches,
	})
}
