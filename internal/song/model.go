package song

// Song mirrors the track shape of the public catalog feed; track ids come
// from the catalog or from an upload, never from the store.
type Song struct {
	TrackID          int64  `json:"trackId"`
	ArtistName       string `json:"artistName"`
	TrackName        string `json:"trackName"`
	PrimaryGenreName string `json:"primaryGenreName"`
	CollectionName   string `json:"collectionName"`
	ArtworkURL       string `json:"artworkUrl100"`
	ReleaseDate      string `json:"releaseDate"`
	IsUserUpload     bool   `json:"isUserUpload"`
	CollectionID     int64  `json:"collectionId"`
	ArtistID         int64  `json:"artistId"`
}

type UpdateSongRequest struct {
	ArtistName       *string `json:"artistName"`
	TrackName        *string `json:"trackName"`
	PrimaryGenreName *string `json:"primaryGenreName"`
	CollectionName   *string `json:"collectionName"`
	ArtworkURL       *string `json:"artworkUrl100"`
	ReleaseDate      *string `json:"releaseDate"`
	IsUserUpload     *bool   `json:"isUserUpload"`
}

// Filter narrows FindAll results.
type Filter struct {
	IsUserUpload *bool
	Search       string
}

// BatchFailure records why one element of a batch insert was dropped.
type BatchFailure struct {
	TrackID int64  `json:"trackId"`
	Reason  string `json:"reason"`
}

// BatchResult carries both sides of a partial-success batch insert.
type BatchResult struct {
	Created []Song         `json:"created"`
	Failed  []BatchFailure `json:"failed"`
}
