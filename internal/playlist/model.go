package playlist

import (
	"time"

	"github.com/lib/pq"
)

const (
	TypeUser = "user"
	TypeAuto = "auto"

	// AutoCreator owns every generated playlist.
	AutoCreator = "automatic"

	// AutoPrefix is the naming convention for generated playlist ids.
	AutoPrefix = "auto-"
)

type Playlist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	TrackIDs  pq.StringArray `json:"trackIds"`
	Cover     string         `json:"cover,omitempty"`
	Type      string         `json:"type"`
	CreatedBy string         `json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SavedLink bookmarks a playlist for a user, independent of who created the
// playlist. The (UserID, PlaylistID) pair is unique.
type SavedLink struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PlaylistID string    `json:"playlistId"`
	SavedAt    time.Time `json:"savedAt"`
}

type UpdatePlaylistRequest struct {
	Name     *string   `json:"name"`
	TrackIDs *[]string `json:"trackIds"`
	Cover    *string   `json:"cover"`
}

type SaveRequest struct {
	UserID     string `json:"userId"`
	PlaylistID string `json:"playlistId"`
}
