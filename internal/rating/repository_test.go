package rating

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Upsert_IsSingleStatement(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO song_ratings (user_id, track_id, rating) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, track_id) DO UPDATE SET rating = EXCLUDED.rating`)).
		WithArgs("alice", int64(101), 5.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Upsert(context.Background(), &Rating{UserID: "alice", TrackID: 101, Rating: 5})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Average_CoalescesEmptyToZero(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(rating), 0) FROM song_ratings WHERE track_id = $1")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	avg, err := r.Average(context.Background(), 999)
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)
	require.NoError(t, mock.ExpectationsWereMet())
}
