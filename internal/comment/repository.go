package comment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stickify/stickify/internal/errs"
)

type Store interface {
	Create(ctx context.Context, c *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	List(ctx context.Context) ([]Comment, error)
	ListByUser(ctx context.Context, user string) ([]Comment, error)
	Update(ctx context.Context, id string, req *UpdateCommentRequest) (*Comment, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Comment) error {
	query := "INSERT INTO comments (id, author, body, posted_at, track_id) VALUES ($1, $2, $3, $4, $5)"
	_, err := r.db.ExecContext(ctx, query, c.ID, c.User, c.Text, c.PostedAt, c.TrackID)
	return errs.Conflict(err)
}

func (r *Repository) Get(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	query := "SELECT id, author, body, posted_at, track_id FROM comments WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.User, &c.Text, &c.PostedAt, &c.TrackID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) collect(rows *sql.Rows) ([]Comment, error) {
	defer rows.Close()
	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.User, &c.Text, &c.PostedAt, &c.TrackID); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *Repository) List(ctx context.Context) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, author, body, posted_at, track_id FROM comments ORDER BY posted_at")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) ListByUser(ctx context.Context, user string) ([]Comment, error) {
	query := "SELECT id, author, body, posted_at, track_id FROM comments WHERE author = $1 ORDER BY posted_at"
	rows, err := r.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) Update(ctx context.Context, id string, req *UpdateCommentRequest) (*Comment, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET body = COALESCE($1, body) WHERE id = $2", req.Text, id)
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
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
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
