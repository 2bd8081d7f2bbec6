package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
)

// BranchService manages gym locations
type BranchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// CreateBranchInput represents the input for creating a branch
type CreateBranchInput struct {
	Name    string
	Address *string
	Phone   *string
	AdminID uuid.UUID
}

// CreateBranch creates a branch with a unique name
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	name := strings.TrimSpace(input.Name)
	existing, err := s.branchRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Branch already exists")
	}

	adminID := input.AdminID
	branch := &entity.Branch{
		Name:    name,
		Address: input.Address,
		Phone:   input.Phone,
		Status:  enum.StatusActive,
		AdminID: &adminID,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListBranches returns the branches visible to the caller
func (s *BranchService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx)
}

// GetBranch returns a branch by id
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	if !repository.CanAccessBranch(ctx, &branch.ID) {
		return nil, apperror.ErrForbidden
	}
	return branch, nil
}
