package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

const defaultPlanCategory = "General"

// PlanService manages membership plans
type PlanService struct {
	planRepo   repository.PlanRepository
	branchRepo repository.BranchRepository
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo repository.PlanRepository, branchRepo repository.BranchRepository) *PlanService {
	return &PlanService{planRepo: planRepo, branchRepo: branchRepo}
}

// PlanInput represents plan fields. Nil fields are left unchanged on update.
type PlanInput struct {
	Name         *string
	Category     *string
	DurationDays *int
	Price        *decimal.Decimal
	Description  *string
	BranchID     *uuid.UUID
	Status       *string
}

// CreatePlan creates a membership plan
func (s *PlanService) CreatePlan(ctx context.Context, input *PlanInput) (*entity.Plan, error) {
	if input.Name == nil || *input.Name == "" {
		return nil, apperror.NewFieldError("name", "name is required")
	}

	plan := &entity.Plan{
		Category: defaultPlanCategory,
		Price:    decimal.Zero,
		Status:   enum.StatusActive,
	}
	if err := s.apply(ctx, plan, input); err != nil {
		return nil, err
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) apply(ctx context.Context, plan *entity.Plan, input *PlanInput) error {
	if input.DurationDays != nil && *input.DurationDays < 0 {
		return apperror.NewFieldError("duration_days", "must not be negative")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return apperror.NewFieldError("price", "must not be negative")
	}
	if input.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return apperror.NewFieldError("branch_id", "Branch does not exist")
		}
		if !repository.CanAccessBranch(ctx, input.BranchID) {
			return apperror.ErrForbidden
		}
		plan.BranchID = input.BranchID
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Category != nil && *input.Category != "" {
		plan.Category = *input.Category
	}
	if input.DurationDays != nil {
		plan.DurationDays = *input.DurationDays
	}
	if input.Price != nil {
		plan.Price = *input.Price
	}
	if input.Description != nil {
		plan.Description = input.Description
	}
	if input.Status != nil && *input.Status != "" {
		plan.Status = *input.Status
	}
	return nil
}

// ListPlans returns plans matching filter
func (s *PlanService) ListPlans(ctx context.Context, filter repository.PlanFilter) ([]entity.Plan, error) {
	return s.planRepo.List(ctx, filter)
}

// GetPlan returns a plan by id
func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NewNotFoundError("Plan")
	}
	return plan, nil
}

// UpdatePlan applies a partial update. The duration of a plan members are
// enrolled on is fixed, since their end dates were derived from it.
func (s *PlanService) UpdatePlan(ctx context.Context, id uuid.UUID, input *PlanInput) (*entity.Plan, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.BranchID != nil && !repository.CanAccessBranch(ctx, plan.BranchID) {
		return nil, apperror.ErrForbidden
	}

	if input.DurationDays != nil && *input.DurationDays != plan.DurationDays {
		members, err := s.planRepo.CountMembers(ctx, id)
		if err != nil {
			return nil, err
		}
		if members > 0 {
			return nil, apperror.NewConflictError("Plan duration cannot change while members are enrolled on it")
		}
	}

	if err := s.apply(ctx, plan, input); err != nil {
		return nil, err
	}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan no member is enrolled on
func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	if plan.BranchID != nil && !repository.CanAccessBranch(ctx, plan.BranchID) {
		return apperror.ErrForbidden
	}

	members, err := s.planRepo.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if members > 0 {
		return apperror.NewConflictError("Plan is assigned to members")
	}
	return s.planRepo.Delete(ctx, id)
}
