package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Create stores a comment. Missing ids and timestamps are filled in here;
// there is deliberately no dedup.
func (s *Service) Create(ctx context.Context, c *Comment) (*Comment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PostedAt == 0 {
		c.PostedAt = time.Now().UnixMilli()
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Comment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Comment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, user string) ([]Comment, error) {
	return s.repo.ListByUser(ctx, user)
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateCommentRequest) (*Comment, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
