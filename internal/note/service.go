package note

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sagacious/sagacious/pkg/model"
)

// Service wraps the repository with note business logic (timestamps,
// defaults). Persistence outcomes surface as model sentinel errors.
type Service struct {
	repo *model.Repository
}

func NewService(repo *model.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name, content string) (*Note, error) {
	if name == "" {
		name = "untitled"
	}
	now := time.Now().UTC()
	n := &Note{Name: name, Content: content, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	n := &Note{}
	if err := s.repo.Get(ctx, id, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, id string, content string, name *string) (*Note, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		n.Name = *name
	}
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return s.repo.Remove(ctx, &Note{OID: oid})
}
