package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) domainRepo.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return conn(ctx, r.db).Omit("Plan", "Branch").Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	err := conn(ctx, r.db).
		Preload("Plan").
		Preload("Branch").
		First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var member entity.Member
	err := conn(ctx, r.db).First(&member, "LOWER(email) = LOWER(?)", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) FindDuplicate(ctx context.Context, email string, phone *string, excludeID *uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	query := conn(ctx, r.db).Model(&entity.Member{})

	if phone != nil && *phone != "" {
		query = query.Where("(LOWER(email) = LOWER(?) OR phone = ?)", email, *phone)
	} else {
		query = query.Where("LOWER(email) = LOWER(?)", email)
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	err := query.First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	return conn(ctx, r.db).Omit("Plan", "Branch").Save(member).Error
}

func (r *memberRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := conn(ctx, r.db).Model(&entity.Member{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Member, int64, error) {
	var members []entity.Member
	var total int64

	params.Validate()
	query := conn(ctx, r.db).Model(&entity.Member{}).
		Scopes(BranchScope(ctx, "branch_id"), Search(params.SearchPattern(), "full_name", "email", "phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Plan").
		Order("created_at DESC").
		Find(&members).Error

	return members, total, err
}

func (r *memberRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]entity.Member, error) {
	var members []entity.Member
	err := conn(ctx, r.db).
		Where("admin_id = ?", adminID).
		Preload("Plan").
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) domainRepo.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *entity.MemberAttendance) error {
	return conn(ctx, r.db).Create(attendance).Error
}

func (r *attendanceRepository) ListByMember(ctx context.Context, memberID uuid.UUID, params *pagination.PaginationParams) ([]entity.MemberAttendance, int64, error) {
	var rows []entity.MemberAttendance
	var total int64

	params.Validate()
	query := conn(ctx, r.db).Model(&entity.MemberAttendance{}).Where("member_id = ?", memberID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("check_in_at DESC").
		Find(&rows).Error
	return rows, total, err
}

func (r *attendanceRepository) LastCheckIn(ctx context.Context, memberID uuid.UUID) (*entity.MemberAttendance, error) {
	var row entity.MemberAttendance
	err := conn(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("check_in_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Omit("Plan").Create(payment).Error
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("member_id = ?", memberID).
		Preload("Plan").
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}
