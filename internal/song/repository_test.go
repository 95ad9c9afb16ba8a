package song

import (
	"context"
	"regexp"
	"testing"

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

func TestRepository_Create_DuplicateTrackIDIsConflict(t *testing.T) {
	r, mock := newMockRepo(t)
	s := &Song{TrackID: 101, ArtistName: "Beck", TrackName: "Loser"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO songs")).
		WithArgs(s.TrackID, s.ArtistName, s.TrackName, s.PrimaryGenreName, s.CollectionName,
			s.ArtworkURL, s.ReleaseDate, s.IsUserUpload, s.CollectionID, s.ArtistID).
		WillReturnError(&pq.Error{Code: "23505", Detail: "Key (track_id) already exists.", Constraint: "songs_pkey"})

	err := r.Create(context.Background(), s)
	require.True(t, errs.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_AppliesFilters(t *testing.T) {
	r, mock := newMockRepo(t)
	uploads := true

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+songColumns+" FROM songs WHERE 1=1 AND is_user_upload = $1 AND (artist_name ILIKE $2 OR track_name ILIKE $2) ORDER BY track_id")).
		WithArgs(true, "%beck%").
		WillReturnRows(sqlmock.NewRows([]string{"track_id", "artist_name", "track_name", "genre", "collection_name", "artwork_url", "release_date", "is_user_upload", "collection_id", "artist_id"}).
			AddRow(101, "Beck", "Loser", "Alternative", "Mellow Gold", "", "1994-03-01", true, 0, 0))

	songs, err := r.List(context.Background(), Filter{IsUserUpload: &uploads, Search: "beck"})
	require.NoError(t, err)
	require.Len(t, songs, 1)
	require.Equal(t, int64(101), songs[0].TrackID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_ZeroRowsIsNotFound(t *testing.T) {
	r, mock := newMockRepo(t)
	name := "Renamed"

	mock.ExpectExec("UPDATE songs").
		WithArgs(nil, "Renamed", nil, nil, nil, nil, nil, int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := r.Update(context.Background(), 999, &UpdateSongRequest{TrackName: &name})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
