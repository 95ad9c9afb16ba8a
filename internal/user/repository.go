package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stickify/stickify/internal/errs"
)

// Store is the persistence contract for users and the follow graph.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
	ToggleFollow(ctx context.Context, followerID, targetEmail string, follow bool) (*User, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = "id, username, email, password, premium, followers, following, created_at"

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Premium, &u.Followers, &u.Following, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	query := "INSERT INTO users (id, username, email, password, premium) VALUES ($1, $2, $3, $4, $5) RETURNING created_at"
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Username, u.Email, u.Password, u.Premium).
		Scan(&u.CreatedAt)
	return errs.Conflict(err)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = $1"
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Premium, &u.Followers, &u.Following, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	query := `UPDATE users
		SET username = COALESCE($1, username),
		    email = COALESCE($2, email),
		    password = COALESCE($3, password),
		    premium = COALESCE($4, premium)
		WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, req.Username, req.Email, req.Password, req.Premium, id)
	if err != nil {
		return nil, errs.Conflict(err)
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

// Exists reports whether a user id is present, as errs.ErrNotFound when it
// is not. Other packages resolve users through this without pulling whole
// records.
func (r *Repository) Exists(ctx context.Context, id string) error {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)"
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return errs.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
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

// ToggleFollow updates both sides of the follow relationship in a single
// transaction. Both rows are locked by one SELECT ... FOR UPDATE (row order is
// stable, so concurrent toggles cannot deadlock), and the array updates are
// guarded so a repeated follow never appends a duplicate entry.
func (r *Repository) ToggleFollow(ctx context.Context, followerID, targetEmail string, follow bool) (*User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		"SELECT id, email FROM users WHERE id = $1 OR email = $2 ORDER BY id FOR UPDATE",
		followerID, targetEmail)
	if err != nil {
		return nil, err
	}

	var followerEmail, targetID string
	var haveFollower, haveTarget bool
	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			rows.Close()
			return nil, err
		}
		if id == followerID {
			haveFollower = true
			followerEmail = email
		}
		if email == targetEmail {
			haveTarget = true
			targetID = id
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if haveFollower && followerEmail == targetEmail {
		return nil, errs.ErrSelfFollow
	}
	if !haveFollower || !haveTarget {
		return nil, errs.ErrNotFound
	}

	if follow {
		_, err = tx.ExecContext(ctx,
			"UPDATE users SET following = array_append(following, $2) WHERE id = $1 AND NOT (following @> ARRAY[$2]::text[])",
			followerID, targetEmail)
		if err == nil {
			_, err = tx.ExecContext(ctx,
				"UPDATE users SET followers = array_append(followers, $2) WHERE id = $1 AND NOT (followers @> ARRAY[$2]::text[])",
				targetID, followerEmail)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE users SET following = array_remove(following, $2) WHERE id = $1",
			followerID, targetEmail)
		if err == nil {
			_, err = tx.ExecContext(ctx,
				"UPDATE users SET followers = array_remove(followers, $2) WHERE id = $1",
				targetID, followerEmail)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("update follow graph: %w", err)
	}

	updated, err := scanUser(tx.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", followerID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return updated, nil
}
