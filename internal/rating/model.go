package rating

// Rating is one user's score for one track; the (UserID, TrackID) pair is
// the identity. The score is an opaque numeric value, not range-checked.
type Rating struct {
	UserID  string  `json:"userId"`
	TrackID int64   `json:"trackId"`
	Rating  float64 `json:"rating"`
}
