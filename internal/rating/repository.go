package rating

import (
	"context"
	"database/sql"
)

type Store interface {
	Upsert(ctx context.Context, r *Rating) error
	ForTrack(ctx context.Context, trackID int64) ([]Rating, error)
	Average(ctx context.Context, trackID int64) (float64, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the rating keyed on (user_id, track_id) in one statement, so
// a re-rate overwrites instead of accumulating and concurrent re-rates
// cannot race a check-then-write.
func (r *Repository) Upsert(ctx context.Context, rt *Rating) error {
	query := `INSERT INTO song_ratings (user_id, track_id, rating) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, track_id) DO UPDATE SET rating = EXCLUDED.rating`
	_, err := r.db.ExecContext(ctx, query, rt.UserID, rt.TrackID, rt.Rating)
	return err
}

func (r *Repository) ForTrack(ctx context.Context, trackID int64) ([]Rating, error) {
	query := "SELECT user_id, track_id, rating FROM song_ratings WHERE track_id = $1"
	rows, err := r.db.QueryContext(ctx, query, trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var rt Rating
		if err := rows.Scan(&rt.UserID, &rt.TrackID, &rt.Rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// Average returns 0 for a track with no ratings; COALESCE keeps the NULL
// aggregate from ever reaching the caller.
func (r *Repository) Average(ctx context.Context, trackID int64) (float64, error) {
	var avg float64
	query := "SELECT COALESCE(AVG(rating), 0) FROM song_ratings WHERE track_id = $1"
	err := r.db.QueryRowContext(ctx, query, trackID).Scan(&avg)
	return avg, err
}
