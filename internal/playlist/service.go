package playlist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/stickify/stickify/internal/errs"
)

// UserResolver checks that the saving user exists. Implemented by the user
// repository.
type UserResolver interface {
	Exists(ctx context.Context, userID string) error
}

type Service struct {
	repo  Store
	links LinkStore
	users UserResolver

	// AutoCreateOnSave lets SavePlaylist materialize a missing auto-*
	// playlist on the fly. Off, a save of an unknown identifier is plain
	// not-found regardless of naming convention.
	AutoCreateOnSave bool
}

func NewService(repo Store, links LinkStore, users UserResolver) *Service {
	return &Service{repo: repo, links: links, users: users, AutoCreateOnSave: true}
}

// Create inserts a playlist. Ids are client-generated UUIDs (or auto-<genre>
// for generated playlists), so there is no natural-key dedup here.
func (s *Service) Create(ctx context.Context, p *Playlist) (*Playlist, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Type == "" {
		p.Type = TypeUser
	}
	if p.Type == TypeAuto {
		p.CreatedBy = AutoCreator
	}
	if p.TrackIDs == nil {
		p.TrackIDs = []string{}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Playlist, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByName returns the first case-insensitive substring match only.
func (s *Service) FindByName(ctx context.Context, fragment string) (*Playlist, error) {
	return s.repo.GetByName(ctx, fragment)
}

func (s *Service) List(ctx context.Context) ([]Playlist, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Playlist, error) {
	return s.repo.ListByCreator(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id string, req *UpdatePlaylistRequest) (*Playlist, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// resolve looks the identifier up as an id first, then as a name. The two
// paths are separate so either can be tested on its own.
func (s *Service) resolve(ctx context.Context, identifier string) (*Playlist, error) {
	p, err := s.repo.GetByID(ctx, identifier)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	return s.repo.GetByName(ctx, identifier)
}

// SavePlaylist bookmarks a playlist for a user. The identifier may be a
// playlist id or a name. Unlike follow, saving is not idempotent: a second
// save of the same pair is a conflict.
func (s *Service) SavePlaylist(ctx context.Context, userID, identifier string) (*SavedLink, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.resolve(ctx, identifier)
	if errors.Is(err, errs.ErrNotFound) && s.AutoCreateOnSave && strings.HasPrefix(identifier, AutoPrefix) {
		p, err = s.Create(ctx, &Playlist{
			ID:        identifier,
			Name:      strings.TrimPrefix(identifier, AutoPrefix),
			Type:      TypeAuto,
			CreatedBy: AutoCreator,
		})
	}
	if err != nil {
		return nil, err
	}

	link := &SavedLink{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlaylistID: p.ID,
	}
	if err := s.links.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) IsPlaylistSaved(ctx context.Context, userID, playlistID string) (bool, error) {
	return s.links.LinkExists(ctx, userID, playlistID)
}

// GetSavedPlaylists resolves a user's bookmarks to full playlists. Links
// whose target playlist no longer exists are dropped silently.
func (s *Service) GetSavedPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	links, err := s.links.ListLinks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Playlist{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PlaylistID)
	}
	playlists, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []Playlist{}
	}
	return playlists, nil
}

// RemoveSaved deletes a bookmark and reports ErrNotFound when there was
// nothing to delete.
func (s *Service) RemoveSaved(ctx context.Context, userID, playlistID string) error {
	return s.links.DeleteLink(ctx, userID, playlistID)
}
