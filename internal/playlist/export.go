package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoExportableTracks reports an export attempt on a playlist whose
// entries carry no playable assets. It is terminal for that attempt.
type ErrNoExportableTracks struct {
	PlaylistID string
	Reason     string
}

func (e *ErrNoExportableTracks) Error() string {
	return fmt.Sprintf("playlist %s has no exportable tracks: %s", e.PlaylistID, e.Reason)
}

// Exporter publishes a playlist to an external target.
type Exporter interface {
	// Export publishes the playlist and returns an opaque location
	// (path or URL) of the result.
	Export(pl *Playlist) (string, error)
}

// M3UExporter writes playlists as extended M3U files referencing each
// entry's preview asset.
type M3UExporter struct {
	// Dir is the directory exports are written into.
	Dir string
}

// NewM3UExporter creates an M3U exporter writing into dir.
func NewM3UExporter(dir string) *M3UExporter {
	return &M3UExporter{Dir: dir}
}

// Export writes the playlist as an .m3u file and returns its path.
// Entries without a preview URL are skipped; a playlist with zero
// playable entries yields ErrNoExportableTracks.
func (x *M3UExporter) Export(pl *Playlist) (string, error) {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")

	playable := 0
	for _, e := range pl.Entries {
		if e.PreviewURL == "" {
			continue
		}
		playable++
		sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", e.ArtistName, e.TrackTitle))
		sb.WriteString(e.PreviewURL + "\n")
	}

	if playable == 0 {
		return "", &ErrNoExportableTracks{
			PlaylistID: pl.ID,
			Reason:     "no entries with preview assets",
		}
	}

	if err := os.MkdirAll(x.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(x.Dir, exportFileName(pl))
	if err := os.WriteFile(path, []byte(sb.String()), 0o640); err != nil {
		return "", fmt.Errorf("writing playlist file: %w", err)
	}
	return path, nil
}

// exportFileName derives a filesystem-safe name from the playlist title,
// suffixed with the id prefix to keep repeated exports distinct.
func exportFileName(pl *Playlist) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, pl.Title)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "playlist"
	}
	suffix := pl.ID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%s.m3u", name, suffix)
}
