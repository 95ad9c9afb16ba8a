package playlist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stickify/stickify/internal/errs"
)

type fakeStore struct {
	byID map[string]*Playlist
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]*Playlist{}}
}

func (f *fakeStore) Create(_ context.Context, p *Playlist) error {
	if _, exists := f.byID[p.ID]; exists {
		return &errs.ConflictError{Code: "23505", Detail: "Key (id) already exists.", Constraint: "playlists_pkey"}
	}
	c := *p
	f.byID[p.ID] = &c
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Playlist, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakeStore) GetByName(_ context.Context, fragment string) (*Playlist, error) {
	needle := strings.ToLower(fragment)
	for _, p := range f.byID {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			c := *p
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeStore) GetByIDs(_ context.Context, ids []string) ([]Playlist, error) {
	var playlists []Playlist
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			playlists = append(playlists, *p)
		}
	}
	return playlists, nil
}

func (f *fakeStore) List(_ context.Context) ([]Playlist, error) {
	var playlists []Playlist
	for _, p := range f.byID {
		playlists = append(playlists, *p)
	}
	return playlists, nil
}

func (f *fakeStore) ListByCreator(_ context.Context, createdBy string) ([]Playlist, error) {
	var playlists []Playlist
	for _, p := range f.byID {
		if p.CreatedBy == createdBy {
			playlists = append(playlists, *p)
		}
	}
	return playlists, nil
}

func (f *fakeStore) Update(_ context.Context, id string, req *UpdatePlaylistRequest) (*Playlist, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.TrackIDs != nil {
		p.TrackIDs = append([]string{}, (*req.TrackIDs)...)
	}
	c := *p
	return &c, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type linkKey struct {
	userID     string
	playlistID string
}

type fakeLinkStore struct {
	byKey map[linkKey]*SavedLink
}

var _ LinkStore = (*fakeLinkStore)(nil)

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{byKey: map[linkKey]*SavedLink{}}
}

func (f *fakeLinkStore) CreateLink(_ context.Context, l *SavedLink) error {
	k := linkKey{l.UserID, l.PlaylistID}
	if _, exists := f.byKey[k]; exists {
		return &errs.ConflictError{Code: "23505", Detail: "Key (user_id, playlist_id) already exists.", Constraint: "user_saved_playlists_user_playlist_key"}
	}
	c := *l
	f.byKey[k] = &c
	return nil
}

func (f *fakeLinkStore) LinkExists(_ context.Context, userID, playlistID string) (bool, error) {
	_, ok := f.byKey[linkKey{userID, playlistID}]
	return ok, nil
}

func (f *fakeLinkStore) ListLinks(_ context.Context, userID string) ([]SavedLink, error) {
	var links []SavedLink
	for k, l := range f.byKey {
		if k.userID == userID {
			links = append(links, *l)
		}
	}
	return links, nil
}

func (f *fakeLinkStore) DeleteLink(_ context.Context, userID, playlistID string) error {
	k := linkKey{userID, playlistID}
	if _, ok := f.byKey[k]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byKey, k)
	return nil
}

type fakeUsers struct {
	ids map[string]bool
}

func (f *fakeUsers) Exists(_ context.Context, userID string) error {
	if !f.ids[userID] {
		return errs.ErrNotFound
	}
	return nil
}

func newTestService() (*Service, *fakeStore, *fakeLinkStore) {
	store := newFakeStore()
	links := newFakeLinkStore()
	s := NewService(store, links, &fakeUsers{ids: map[string]bool{"u1": true}})
	return s, store, links
}

func TestSavePlaylist_DoubleSaveConflicts(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	p, err := s.Create(ctx, &Playlist{Name: "Faves", CreatedBy: "u1", TrackIDs: []string{"101"}})
	require.NoError(t, err)

	link, err := s.SavePlaylist(ctx, "u1", p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, link.PlaylistID)

	_, err = s.SavePlaylist(ctx, "u1", p.ID)
	require.True(t, errs.IsConflict(err), "saving twice is a conflict, not a no-op")
}

func TestSavePlaylist_ResolvesByName(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	p, err := s.Create(ctx, &Playlist{Name: "Morning Jams", CreatedBy: "u1"})
	require.NoError(t, err)

	link, err := s.SavePlaylist(ctx, "u1", "morning")
	require.NoError(t, err)
	require.Equal(t, p.ID, link.PlaylistID)
}

func TestSavePlaylist_AutoCreatesWithConvention(t *testing.T) {
	s, store, _ := newTestService()
	ctx := context.Background()

	link, err := s.SavePlaylist(ctx, "u1", "auto-Rock")
	require.NoError(t, err)
	require.Equal(t, "auto-Rock", link.PlaylistID)

	created := store.byID["auto-Rock"]
	require.NotNil(t, created)
	require.Equal(t, TypeAuto, created.Type)
	require.Equal(t, AutoCreator, created.CreatedBy)
	require.Equal(t, "Rock", created.Name)
}

func TestSavePlaylist_AutoCreateDisabled(t *testing.T) {
	s, _, _ := newTestService()
	s.AutoCreateOnSave = false

	_, err := s.SavePlaylist(context.Background(), "u1", "auto-Rock")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSavePlaylist_MissingUserOrPlaylist(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	_, err := s.SavePlaylist(ctx, "ghost", "whatever")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = s.SavePlaylist(ctx, "u1", "no-such-playlist")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetSavedPlaylists_DropsDanglingLinks(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	keep, err := s.Create(ctx, &Playlist{Name: "Keep", CreatedBy: "u1"})
	require.NoError(t, err)
	gone, err := s.Create(ctx, &Playlist{Name: "Gone", CreatedBy: "u1"})
	require.NoError(t, err)

	_, err = s.SavePlaylist(ctx, "u1", keep.ID)
	require.NoError(t, err)
	_, err = s.SavePlaylist(ctx, "u1", gone.ID)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, gone.ID))

	saved, err := s.GetSavedPlaylists(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, keep.ID, saved[0].ID)
}

func TestIsPlaylistSaved(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	p, err := s.Create(ctx, &Playlist{Name: "Faves", CreatedBy: "u1"})
	require.NoError(t, err)

	saved, err := s.IsPlaylistSaved(ctx, "u1", p.ID)
	require.NoError(t, err)
	require.False(t, saved)

	_, err = s.SavePlaylist(ctx, "u1", p.ID)
	require.NoError(t, err)

	saved, err = s.IsPlaylistSaved(ctx, "u1", p.ID)
	require.NoError(t, err)
	require.True(t, saved)
}

func TestRemoveSaved_NotFoundOnZeroRows(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()

	p, err := s.Create(ctx, &Playlist{Name: "Faves", CreatedBy: "u1"})
	require.NoError(t, err)
	_, err = s.SavePlaylist(ctx, "u1", p.ID)
	require.NoError(t, err)

	require.NoError(t, s.RemoveSaved(ctx, "u1", p.ID))
	require.ErrorIs(t, s.RemoveSaved(ctx, "u1", p.ID), errs.ErrNotFound)
}

func TestCreate_AutoTypeForcesAutomaticCreator(t *testing.T) {
	s, _, _ := newTestService()

	p, err := s.Create(context.Background(), &Playlist{ID: "auto-Jazz", Name: "Jazz", Type: TypeAuto, CreatedBy: "u1"})
	require.NoError(t, err)
	require.Equal(t, AutoCreator, p.CreatedBy)
}
