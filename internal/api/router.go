// Package api exposes the scan and playlist operations over HTTP.
package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/pgulley/festline/internal/pipeline"
	"github.com/pgulley/festline/internal/playlist"
	"github.com/pgulley/festline/internal/scan"
)

// RouterDeps bundles all dependencies needed by the HTTP router.
type RouterDeps struct {
	Pipeline        *pipeline.Pipeline
	ScanService     *scan.Service
	PlaylistService *playlist.Service
	Exporter        playlist.Exporter
	DB              *sql.DB
	Logger          *slog.Logger
}

// Router sets up all HTTP routes for the application.
type Router struct {
	pipeline  *pipeline.Pipeline
	scans     *scan.Service
	playlists *playlist.Service
	exporter  playlist.Exporter
	db        *sql.DB
	logger    *slog.Logger
}

// NewRouter creates a new Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		pipeline:  deps.Pipeline,
		scans:     deps.ScanService,
		playlists: deps.PlaylistService,
		exporter:  deps.Exporter,
		db:        deps.DB,
		logger:    deps.Logger.With(slog.String("component", "api")),
	}
}

// Handler returns the fully configured HTTP handler.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", r.handleHealth)

	mux.HandleFunc("POST /api/v1/scans", r.handleCreateScan)
	mux.HandleFunc("GET /api/v1/scans/{id}", r.handleGetScan)

	mux.HandleFunc("GET /api/v1/playlists", r.handleListPlaylists)
	mux.HandleFunc("GET /api/v1/playlists/{id}", r.handleGetPlaylist)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", r.handleDeletePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/{id}/export", r.handleExportPlaylist)

	return mux
}
