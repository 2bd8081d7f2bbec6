package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type classTypeRepository struct {
	db *gorm.DB
}

// NewClassTypeRepository creates a new class type repository
func NewClassTypeRepository(db *gorm.DB) domainRepo.ClassTypeRepository {
	return &classTypeRepository{db: db}
}

func (r *classTypeRepository) Create(ctx context.Context, classType *entity.ClassType) error {
	return conn(ctx, r.db).Create(classType).Error
}

func (r *classTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassType, error) {
	var classType entity.ClassType
	err := conn(ctx, r.db).First(&classType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &classType, err
}

func (r *classTypeRepository) GetByName(ctx context.Context, name string) (*entity.ClassType, error) {
	var classType entity.ClassType
	err := conn(ctx, r.db).First(&classType, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &classType, err
}

func (r *classTypeRepository) List(ctx context.Context) ([]entity.ClassType, error) {
	var classTypes []entity.ClassType
	err := conn(ctx, r.db).Order("name ASC").Find(&classTypes).Error
	return classTypes, err
}

const scheduleViewColumns = `cs.*,
	COALESCE(ct.name, '') AS class_type_name,
	COALESCE(u.full_name, '') AS trainer_name,
	COALESCE(b.name, '') AS branch_name,
	(SELECT COUNT(*) FROM bookings bk WHERE bk.schedule_id = cs.id) AS booked_count`

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new class schedule repository
func NewScheduleRepository(db *gorm.DB) domainRepo.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.ClassSchedule) error {
	return conn(ctx, r.db).Omit("ClassType", "Trainer", "Branch").Create(schedule).Error
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error) {
	var schedule entity.ClassSchedule
	err := conn(ctx, r.db).First(&schedule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &schedule, err
}

func (r *scheduleRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error) {
	var schedule entity.ClassSchedule
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&schedule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &schedule, err
}

func (r *scheduleRepository) views(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Table("class_schedules AS cs").
		Select(scheduleViewColumns).
		Joins("LEFT JOIN class_types ct ON ct.id = cs.class_type_id").
		Joins("LEFT JOIN users u ON u.id = cs.trainer_id").
		Joins("LEFT JOIN branches b ON b.id = cs.branch_id")
}

func (r *scheduleRepository) GetView(ctx context.Context, id uuid.UUID) (*entity.ScheduleView, error) {
	var views []entity.ScheduleView
	if err := r.views(ctx).Where("cs.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.ClassSchedule) error {
	return conn(ctx, r.db).Omit("ClassType", "Trainer", "Branch").Save(schedule).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.ClassSchedule{}, "id = ?", id).Error
}

func (r *scheduleRepository) ListViews(ctx context.Context) ([]entity.ScheduleView, error) {
	var views []entity.ScheduleView
	err := r.views(ctx).
		Scopes(BranchScope(ctx, "cs.branch_id")).
		Order("cs.date ASC, cs.start_time ASC").
		Scan(&views).Error
	return views, err
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return conn(ctx, r.db).Omit("Schedule", "Member").Create(booking).Error
}

func (r *bookingRepository) Get(ctx context.Context, memberID, scheduleID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := conn(ctx, r.db).
		Where("member_id = ? AND schedule_id = ?", memberID, scheduleID).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Booking{}).Where("schedule_id = ?", scheduleID).Count(&total).Error
	return total, err
}

func (r *bookingRepository) DeleteBySchedule(ctx context.Context, scheduleID uuid.UUID) error {
	return conn(ctx, r.db).Where("schedule_id = ?", scheduleID).Delete(&entity.Booking{}).Error
}

func (r *bookingRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]entity.BookingView, error) {
	var views []entity.BookingView
	err := conn(ctx, r.db).
		Table("bookings AS bk").
		Select(`bk.id, bk.member_id, bk.schedule_id, bk.created_at,
			cs.date, cs.day, cs.start_time, cs.end_time,
			COALESCE(ct.name, '') AS class_name,
			COALESCE(u.full_name, '') AS trainer_name`).
		Joins("JOIN class_schedules cs ON cs.id = bk.schedule_id").
		Joins("LEFT JOIN class_types ct ON ct.id = cs.class_type_id").
		Joins("LEFT JOIN users u ON u.id = cs.trainer_id").
		Where("bk.member_id = ?", memberID).
		Order("cs.date ASC, cs.start_time ASC").
		Scan(&views).Error
	return views, err
}

func (r *bookingRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := conn(ctx, r.db).
		Where("schedule_id = ?", scheduleID).
		Preload("Member").
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}
