package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateProfile(ctx context.Context, profile *entity.StaffProfile) error {
	return conn(ctx, r.db).Create(profile).Error
}

func (r *staffRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := conn(ctx, r.db).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *staffRepository) UpdateProfile(ctx context.Context, profile *entity.StaffProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}

func (r *staffRepository) List(ctx context.Context) ([]entity.Staff, error) {
	var users []entity.User
	err := conn(ctx, r.db).
		Scopes(BranchScope(ctx, "users.branch_id")).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name NOT IN ?", []string{entity.RoleSuperAdmin, entity.RoleMember}).
		Preload("Role").
		Preload("Branch").
		Order("users.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []entity.Staff{}, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	var profiles []entity.StaffProfile
	if err := conn(ctx, r.db).Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]*entity.StaffProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	staff := make([]entity.Staff, len(users))
	for i, u := range users {
		staff[i] = entity.Staff{User: u, Profile: byUser[u.ID]}
	}
	return staff, nil
}
