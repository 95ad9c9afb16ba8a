package rating

import "context"

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Rate stores or overwrites the user's rating for a track.
func (s *Service) Rate(ctx context.Context, userID string, trackID int64, score float64) (*Rating, error) {
	rt := &Rating{UserID: userID, TrackID: trackID, Rating: score}
	if err := s.repo.Upsert(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// Ratings maps each rater to their current score for the track.
func (s *Service) Ratings(ctx context.Context, trackID int64) (map[string]float64, error) {
	ratings, err := s.repo.ForTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]float64, len(ratings))
	for _, rt := range ratings {
		byUser[rt.UserID] = rt.Rating
	}
	return byUser, nil
}

func (s *Service) Average(ctx context.Context, trackID int64) (float64, error) {
	return s.repo.Average(ctx, trackID)
}
