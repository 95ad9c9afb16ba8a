package comment

// Comment is one entry of a track's feed. PostedAt is epoch milliseconds.
// There is no uniqueness rule: a user may comment on the same track any
// number of times.
type Comment struct {
	ID       string `json:"id"`
	User     string `json:"user"`
	Text     string `json:"text"`
	PostedAt int64  `json:"postedTime"`
	TrackID  int64  `json:"trackId"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}
