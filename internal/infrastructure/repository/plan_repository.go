package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) domainRepo.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *entity.Plan) error {
	return conn(ctx, r.db).Create(plan).Error
}

func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var plan entity.Plan
	err := conn(ctx, r.db).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *planRepository) Update(ctx context.Context, plan *entity.Plan) error {
	return conn(ctx, r.db).Save(plan).Error
}

func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Plan{}, "id = ?", id).Error
}

// List returns plans of the given branch plus gym-wide plans
func (r *planRepository) List(ctx context.Context, filter domainRepo.PlanFilter) ([]entity.Plan, error) {
	var plans []entity.Plan
	query := conn(ctx, r.db).Model(&entity.Plan{})

	if filter.BranchID != nil {
		query = query.Where("branch_id = ? OR branch_id IS NULL", *filter.BranchID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	err := query.Order("category ASC, duration_days ASC, name ASC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) CountMembers(ctx context.Context, planID uuid.UUID) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Member{}).Where("plan_id = ?", planID).Count(&total).Error
	return total, err
}
