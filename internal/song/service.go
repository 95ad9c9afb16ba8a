package song

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/stickify/stickify/internal/errs"
)

// ArtworkStore offloads artwork payloads to object storage. Nil keeps data
// URIs inline in the song record.
type ArtworkStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
}

const artworkPrefix = "artwork://"

type Service struct {
	repo    Store
	artwork ArtworkStore
	log     *zap.Logger
}

func NewService(repo Store, artwork ArtworkStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, artwork: artwork, log: log}
}

// Create inserts a song. A duplicate track id is not an error: the
// pre-existing record is fetched and returned instead.
func (s *Service) Create(ctx context.Context, sng *Song) (*Song, error) {
	if err := s.offloadArtwork(ctx, sng); err != nil {
		return nil, err
	}

	err := s.repo.Create(ctx, sng)
	if errs.IsConflict(err) {
		return s.repo.GetByTrackID(ctx, sng.TrackID)
	}
	if err != nil {
		return nil, err
	}
	return sng, nil
}

// CreateBatch applies Create to each element independently. One failure never
// aborts the rest; the result carries both the created subset and the
// per-item failure reasons.
func (s *Service) CreateBatch(ctx context.Context, songs []Song) BatchResult {
	var result BatchResult
	for i := range songs {
		created, err := s.Create(ctx, &songs[i])
		if err != nil {
			s.log.Warn("batch song insert failed",
				zap.Int64("track_id", songs[i].TrackID),
				zap.Error(err))
			result.Failed = append(result.Failed, BatchFailure{
				TrackID: songs[i].TrackID,
				Reason:  err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *created)
	}
	return result
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Song, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, trackID int64) (*Song, error) {
	return s.repo.GetByTrackID(ctx, trackID)
}

func (s *Service) Update(ctx context.Context, trackID int64, req *UpdateSongRequest) (*Song, error) {
	return s.repo.Update(ctx, trackID, req)
}

func (s *Service) Remove(ctx context.Context, trackID int64) error {
	return s.repo.Delete(ctx, trackID)
}

// Artwork streams stored artwork for a track. Only songs whose artwork was
// offloaded at create time have anything to stream.
func (s *Service) Artwork(ctx context.Context, trackID int64) (io.ReadCloser, error) {
	if s.artwork == nil {
		return nil, errs.ErrNotFound
	}
	sng, err := s.repo.GetByTrackID(ctx, trackID)
	if err != nil {
		return nil, err
	}
	name, ok := strings.CutPrefix(sng.ArtworkURL, artworkPrefix)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return s.artwork.Get(ctx, name)
}

// offloadArtwork moves a base64 data URI into object storage and rewrites the
// artwork field to the object reference.
func (s *Service) offloadArtwork(ctx context.Context, sng *Song) error {
	if s.artwork == nil || !strings.HasPrefix(sng.ArtworkURL, "data:") {
		return nil
	}

	meta, payload, ok := strings.Cut(strings.TrimPrefix(sng.ArtworkURL, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil
	}
	contentType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decode artwork for track %d: %w", sng.TrackID, err)
	}

	name := fmt.Sprintf("%d", sng.TrackID)
	if err := s.artwork.Put(ctx, name, contentType, data); err != nil {
		return err
	}
	sng.ArtworkURL = artworkPrefix + name
	return nil
}
