package user

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/stickify/stickify/internal/errs"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

// arrayLiteral renders the Postgres text form pq.StringArray scans from.
func arrayLiteral(elems []string) string {
	return "{" + strings.Join(elems, ",") + "}"
}

func userRows(u *User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "premium", "followers", "following", "created_at"}).
		AddRow(u.ID, u.Username, u.Email, u.Password, u.Premium, arrayLiteral(u.Followers), arrayLiteral(u.Following), time.Now())
}

func TestRepository_Create_MapsUniqueViolationToConflict(t *testing.T) {
	r, mock := newMockRepo(t)
	u := &User{ID: "u1", Username: "alice", Email: "alice@test.com", Password: "hash"}

	insert := regexp.QuoteMeta("INSERT INTO users (id, username, email, password, premium) VALUES ($1, $2, $3, $4, $5) RETURNING created_at")

	mock.ExpectQuery(insert).
		WithArgs(u.ID, u.Username, u.Email, u.Password, u.Premium).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	require.NoError(t, r.Create(context.Background(), u))

	mock.ExpectQuery(insert).
		WithArgs(u.ID, u.Username, u.Email, u.Password, u.Premium).
		WillReturnError(&pq.Error{Code: "23505", Detail: "Key (email) already exists.", Constraint: "users_email_key"})
	err := r.Create(context.Background(), u)
	require.True(t, errs.IsConflict(err))

	var ce *errs.ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "23505", ce.Code)
	require.Equal(t, "users_email_key", ce.Constraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByEmail_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE email = $1")).
		WithArgs("nobody@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.GetByEmail(context.Background(), "nobody@test.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ToggleFollow_RunsInOneTransaction(t *testing.T) {
	r, mock := newMockRepo(t)

	alice := &User{ID: "a", Username: "alice", Email: "alice@test.com", Password: "h", Following: []string{"bob@test.com"}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email FROM users WHERE id = $1 OR email = $2 ORDER BY id FOR UPDATE")).
		WithArgs("a", "bob@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow("a", "alice@test.com").
			AddRow("b", "bob@test.com"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET following = array_append(following, $2) WHERE id = $1 AND NOT (following @> ARRAY[$2]::text[])")).
		WithArgs("a", "bob@test.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET followers = array_append(followers, $2) WHERE id = $1 AND NOT (followers @> ARRAY[$2]::text[])")).
		WithArgs("b", "alice@test.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")).
		WithArgs("a").
		WillReturnRows(userRows(alice))
	mock.ExpectCommit()

	updated, err := r.ToggleFollow(context.Background(), "a", "bob@test.com", true)
	require.NoError(t, err)
	require.Equal(t, []string{"bob@test.com"}, []string(updated.Following))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ToggleFollow_SelfFollowRejected(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email FROM users WHERE id = $1 OR email = $2 ORDER BY id FOR UPDATE")).
		WithArgs("a", "alice@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("a", "alice@test.com"))
	mock.ExpectRollback()

	_, err := r.ToggleFollow(context.Background(), "a", "alice@test.com", true)
	require.ErrorIs(t, err, errs.ErrSelfFollow)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ToggleFollow_MissingTarget(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email FROM users WHERE id = $1 OR email = $2 ORDER BY id FOR UPDATE")).
		WithArgs("a", "ghost@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("a", "alice@test.com"))
	mock.ExpectRollback()

	_, err := r.ToggleFollow(context.Background(), "a", "ghost@test.com", true)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
