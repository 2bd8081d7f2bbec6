package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salaryRepository struct {
	db *gorm.DB
}

// NewSalaryRepository creates a new salary repository
func NewSalaryRepository(db *gorm.DB) domainRepo.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) Create(ctx context.Context, salary *entity.Salary) error {
	return conn(ctx, r.db).Omit("Staff").Create(salary).Error
}

func (r *salaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Salary, error) {
	var salary entity.Salary
	err := conn(ctx, r.db).First(&salary, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &salary, err
}

// views joins salaries with staff names. Soft deleted staff keep their payroll history.
func (r *salaryRepository) views(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Table("salaries AS s").
		Select("s.*, COALESCE(u.full_name, '') AS full_name").
		Joins("LEFT JOIN users u ON u.id = s.staff_id")
}

func (r *salaryRepository) GetView(ctx context.Context, id uuid.UUID) (*entity.SalaryView, error) {
	var views []entity.SalaryView
	if err := r.views(ctx).Where("s.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *salaryRepository) Update(ctx context.Context, salary *entity.Salary) error {
	return conn(ctx, r.db).Omit("Staff").Save(salary).Error
}

func (r *salaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Salary{}, "id = ?", id).Error
}

func (r *salaryRepository) List(ctx context.Context) ([]entity.SalaryView, error) {
	var views []entity.SalaryView
	err := r.views(ctx).Order("s.created_at DESC").Scan(&views).Error
	return views, err
}

func (r *salaryRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]entity.SalaryView, error) {
	var views []entity.SalaryView
	err := r.views(ctx).
		Where("s.staff_id = ?", staffID).
		Order("s.period_start DESC").
		Scan(&views).Error
	return views, err
}

// ListByPeriod returns records whose pay period overlaps [from, to]
func (r *salaryRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]entity.SalaryView, error) {
	var views []entity.SalaryView
	err := r.views(ctx).
		Where("s.period_start <= ? AND s.period_end >= ?", to, from).
		Order("s.period_start ASC, full_name ASC").
		Scan(&views).Error
	return views, err
}
