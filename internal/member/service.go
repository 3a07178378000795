package member

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrMemberNotFound = errors.New("member not found")
)

// Service handles member business logic
type Service struct {
	repo *Repository
}

// NewService creates a new member service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new member
func (s *Service) Create(ctx context.Context, req *CreateMemberRequest) (*Member, error) {
	return s.repo.Create(ctx, req)
}

// GetByID retrieves a member by their ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

// List retrieves all members with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Member, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}
