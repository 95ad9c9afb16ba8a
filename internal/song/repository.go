package song

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stickify/stickify/internal/errs"
)

type Store interface {
	Create(ctx context.Context, s *Song) error
	GetByTrackID(ctx context.Context, trackID int64) (*Song, error)
	List(ctx context.Context, filter Filter) ([]Song, error)
	Update(ctx context.Context, trackID int64, req *UpdateSongRequest) (*Song, error)
	Delete(ctx context.Context, trackID int64) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const songColumns = "track_id, artist_name, track_name, genre, collection_name, artwork_url, release_date, is_user_upload, collection_id, artist_id"

func scanSong(row interface{ Scan(...any) error }) (*Song, error) {
	var s Song
	err := row.Scan(&s.TrackID, &s.ArtistName, &s.TrackName, &s.PrimaryGenreName, &s.CollectionName,
		&s.ArtworkURL, &s.ReleaseDate, &s.IsUserUpload, &s.CollectionID, &s.ArtistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, s *Song) error {
	query := `INSERT INTO songs (track_id, artist_name, track_name, genre, collection_name, artwork_url, release_date, is_user_upload, collection_id, artist_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, s.TrackID, s.ArtistName, s.TrackName, s.PrimaryGenreName,
		s.CollectionName, s.ArtworkURL, s.ReleaseDate, s.IsUserUpload, s.CollectionID, s.ArtistID)
	return errs.Conflict(err)
}

func (r *Repository) GetByTrackID(ctx context.Context, trackID int64) (*Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE track_id = $1"
	return scanSong(r.db.QueryRowContext(ctx, query, trackID))
}

func (r *Repository) List(ctx context.Context, filter Filter) ([]Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE 1=1"
	var args []any
	if filter.IsUserUpload != nil {
		args = append(args, *filter.IsUserUpload)
		query += " AND is_user_upload = $1"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		if len(args) == 1 {
			query += " AND (artist_name ILIKE $1 OR track_name ILIKE $1)"
		} else {
			query += " AND (artist_name ILIKE $2 OR track_name ILIKE $2)"
		}
	}
	query += " ORDER BY track_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.TrackID, &s.ArtistName, &s.TrackName, &s.PrimaryGenreName, &s.CollectionName,
			&s.ArtworkURL, &s.ReleaseDate, &s.IsUserUpload, &s.CollectionID, &s.ArtistID); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (r *Repository) Update(ctx context.Context, trackID int64, req *UpdateSongRequest) (*Song, error) {
	query := `UPDATE songs
		SET artist_name = COALESCE($1, artist_name),
		    track_name = COALESCE($2, track_name),
		    genre = COALESCE($3, genre),
		    collection_name = COALESCE($4, collection_name),
		    artwork_url = COALESCE($5, artwork_url),
		    release_date = COALESCE($6, release_date),
		    is_user_upload = COALESCE($7, is_user_upload)
		WHERE track_id = $8`
	res, err := r.db.ExecContext(ctx, query, req.ArtistName, req.TrackName, req.PrimaryGenreName,
		req.CollectionName, req.ArtworkURL, req.ReleaseDate, req.IsUserUpload, trackID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errs.ErrNotFound
	}
	return r.GetByTrackID(ctx, trackID)
}

func (r *Repository) Delete(ctx context.Context, trackID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM songs WHERE track_id = $1", trackID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
