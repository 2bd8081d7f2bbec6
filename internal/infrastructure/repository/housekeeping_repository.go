package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type housekeepingRepository struct {
	db *gorm.DB
}

// NewHousekeepingRepository creates a new housekeeping task repository
func NewHousekeepingRepository(db *gorm.DB) domainRepo.HousekeepingRepository {
	return &housekeepingRepository{db: db}
}

func (r *housekeepingRepository) Create(ctx context.Context, task *entity.HousekeepingTask) error {
	return conn(ctx, r.db).Create(task).Error
}

func (r *housekeepingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HousekeepingTask, error) {
	var task entity.HousekeepingTask
	err := conn(ctx, r.db).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *housekeepingRepository) Update(ctx context.Context, task *entity.HousekeepingTask) error {
	return conn(ctx, r.db).Save(task).Error
}

func (r *housekeepingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.HousekeepingTask{}, "id = ?", id).Error
}

func (r *housekeepingRepository) List(ctx context.Context) ([]entity.HousekeepingTask, error) {
	var tasks []entity.HousekeepingTask
	err := conn(ctx, r.db).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *housekeepingRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]entity.HousekeepingTask, error) {
	var tasks []entity.HousekeepingTask
	err := conn(ctx, r.db).Where("assigned_to = ?", userID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}
