package playlist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/stickify/stickify/internal/errs"
)

type Store interface {
	Create(ctx context.Context, p *Playlist) error
	GetByID(ctx context.Context, id string) (*Playlist, error)
	GetByName(ctx context.Context, fragment string) (*Playlist, error)
	GetByIDs(ctx context.Context, ids []string) ([]Playlist, error)
	List(ctx context.Context) ([]Playlist, error)
	ListByCreator(ctx context.Context, createdBy string) ([]Playlist, error)
	Update(ctx context.Context, id string, req *UpdatePlaylistRequest) (*Playlist, error)
	Delete(ctx context.Context, id string) error
}

type LinkStore interface {
	CreateLink(ctx context.Context, l *SavedLink) error
	LinkExists(ctx context.Context, userID, playlistID string) (bool, error)
	ListLinks(ctx context.Context, userID string) ([]SavedLink, error)
	DeleteLink(ctx context.Context, userID, playlistID string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const playlistColumns = "id, name, track_ids, cover, type, created_by, created_at"

func scanPlaylist(row interface{ Scan(...any) error }) (*Playlist, error) {
	var p Playlist
	err := row.Scan(&p.ID, &p.Name, &p.TrackIDs, &p.Cover, &p.Type, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) collect(rows *sql.Rows) ([]Playlist, error) {
	defer rows.Close()
	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.TrackIDs, &p.Cover, &p.Type, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *Repository) Create(ctx context.Context, p *Playlist) error {
	query := `INSERT INTO playlists (id, name, track_ids, cover, type, created_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.TrackIDs, p.Cover, p.Type, p.CreatedBy).
		Scan(&p.CreatedAt)
	return errs.Conflict(err)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Playlist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE id = $1"
	return scanPlaylist(r.db.QueryRowContext(ctx, query, id))
}

// GetByName does a case-insensitive substring match and returns the first
// match only.
func (r *Repository) GetByName(ctx context.Context, fragment string) (*Playlist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE name ILIKE $1 ORDER BY created_at LIMIT 1"
	return scanPlaylist(r.db.QueryRowContext(ctx, query, "%"+fragment+"%"))
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]Playlist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + playlistColumns + " FROM playlists WHERE id = ANY($1) ORDER BY created_at"
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) List(ctx context.Context) ([]Playlist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+playlistColumns+" FROM playlists ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) ListByCreator(ctx context.Context, createdBy string) ([]Playlist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists WHERE created_by = $1 ORDER BY created_at"
	rows, err := r.db.QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) Update(ctx context.Context, id string, req *UpdatePlaylistRequest) (*Playlist, error) {
	var trackIDs any
	if req.TrackIDs != nil {
		trackIDs = pq.StringArray(*req.TrackIDs)
	}
	query := `UPDATE playlists
		SET name = COALESCE($1, name),
		    track_ids = COALESCE($2, track_ids),
		    cover = COALESCE($3, cover)
		WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, req.Name, trackIDs, req.Cover, id)
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
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = $1", id)
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

// CreateLink inserts a bookmark. The unique constraint on
// (user_id, playlist_id) makes a double save a conflict, not a duplicate row,
// even under concurrent requests.
func (r *Repository) CreateLink(ctx context.Context, l *SavedLink) error {
	query := "INSERT INTO user_saved_playlists (id, user_id, playlist_id) VALUES ($1, $2, $3) RETURNING saved_at"
	err := r.db.QueryRowContext(ctx, query, l.ID, l.UserID, l.PlaylistID).Scan(&l.SavedAt)
	return errs.Conflict(err)
}

func (r *Repository) LinkExists(ctx context.Context, userID, playlistID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM user_saved_playlists WHERE user_id = $1 AND playlist_id = $2)"
	err := r.db.QueryRowContext(ctx, query, userID, playlistID).Scan(&exists)
	return exists, err
}

func (r *Repository) ListLinks(ctx context.Context, userID string) ([]SavedLink, error) {
	query := "SELECT id, user_id, playlist_id, saved_at FROM user_saved_playlists WHERE user_id = $1 ORDER BY saved_at"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []SavedLink
	for rows.Next() {
		var l SavedLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.PlaylistID, &l.SavedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *Repository) DeleteLink(ctx context.Context, userID, playlistID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_saved_playlists WHERE user_id = $1 AND playlist_id = $2", userID, playlistID)
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
