package group

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group and adds its initial members
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	g, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(req.MemberIDs) > 0 {
		if err := s.repo.AddMembers(ctx, g.ID, req.MemberIDs); err != nil {
			// TODO: wrap group insert and member inserts in one transaction
			return nil, err
		}
	}

	g.MemberIDs, err = s.repo.GetMemberIDs(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a group with its member ids
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	g.MemberIDs, err = s.repo.GetMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// AddMembers adds members to an existing group
func (s *Service) AddMembers(ctx context.Context, id uuid.UUID, req *AddMembersRequest) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	if err := s.repo.AddMembers(ctx, id, req.MemberIDs); err != nil {
		return nil, err
	}

	g.MemberIDs, err = s.repo.GetMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// List retrieves all groups with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}
