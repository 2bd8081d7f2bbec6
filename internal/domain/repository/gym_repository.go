package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
)

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	GetByName(ctx context.Context, name string) (*entity.Branch, error)
	List(ctx context.Context) ([]entity.Branch, error)
	Count(ctx context.Context) (int64, error)
}

// PlanFilter narrows plan listings
type PlanFilter struct {
	BranchID *uuid.UUID
	Category string
	Status   string
}

// PlanRepository defines the interface for plan data operations
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter PlanFilter) ([]entity.Plan, error)
	CountMembers(ctx context.Context, planID uuid.UUID) (int64, error)
}

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)
	GetByEmail(ctx context.Context, email string) (*entity.Member, error)
	// FindDuplicate returns a member other than excludeID sharing the email or phone
	FindDuplicate(ctx context.Context, email string, phone *string, excludeID *uuid.UUID) (*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	// List is branch scoped by ctx and searches name, email and phone
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Member, int64, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]entity.Member, error)
}

// AttendanceRepository defines the interface for member check-ins
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entity.MemberAttendance) error
	ListByMember(ctx context.Context, memberID uuid.UUID, params *pagination.PaginationParams) ([]entity.MemberAttendance, int64, error)
	LastCheckIn(ctx context.Context, memberID uuid.UUID) (*entity.MemberAttendance, error)
}

// PaymentRepository defines the interface for membership payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]entity.Payment, error)
}

// StaffRepository defines the interface for staff profile data operations
type StaffRepository interface {
	CreateProfile(ctx context.Context, profile *entity.StaffProfile) error
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.StaffProfile, error)
	UpdateProfile(ctx context.Context, profile *entity.StaffProfile) error
	// List is branch scoped by ctx and excludes super admins
	List(ctx context.Context) ([]entity.Staff, error)
}

// ClassTypeRepository defines the interface for class type data operations
type ClassTypeRepository interface {
	Create(ctx context.Context, classType *entity.ClassType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassType, error)
	GetByName(ctx context.Context, name string) (*entity.ClassType, error)
	List(ctx context.Context) ([]entity.ClassType, error)
}

// ScheduleRepository defines the interface for class schedule data operations
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.ClassSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error)
	// GetByIDForUpdate locks the schedule row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error)
	GetView(ctx context.Context, id uuid.UUID) (*entity.ScheduleView, error)
	Update(ctx context.Context, schedule *entity.ClassSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListViews is branch scoped by ctx, ordered by date then start time
	ListViews(ctx context.Context) ([]entity.ScheduleView, error)
}

// BookingRepository defines the interface for class booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Get(ctx context.Context, memberID, scheduleID uuid.UUID) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error)
	DeleteBySchedule(ctx context.Context, scheduleID uuid.UUID) error
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]entity.BookingView, error)
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]entity.Booking, error)
}

// HousekeepingRepository defines the interface for housekeeping task data operations
type HousekeepingRepository interface {
	Create(ctx context.Context, task *entity.HousekeepingTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.HousekeepingTask, error)
	Update(ctx context.Context, task *entity.HousekeepingTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.HousekeepingTask, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]entity.HousekeepingTask, error)
}

// SalaryRepository defines the interface for payroll record data operations
type SalaryRepository interface {
	Create(ctx context.Context, salary *entity.Salary) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Salary, error)
	GetView(ctx context.Context, id uuid.UUID) (*entity.SalaryView, error)
	Update(ctx context.Context, salary *entity.Salary) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns newest first
	List(ctx context.Context) ([]entity.SalaryView, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]entity.SalaryView, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]entity.SalaryView, error)
}
