package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
)

// ClockLayout is the HH:MM format of schedule start and end times
const ClockLayout = "15:04"

var errClassFull = apperror.NewAppError(http.StatusBadRequest, "Class is full")

// ClassService manages class types, schedules and bookings
type ClassService struct {
	classTypeRepo repository.ClassTypeRepository
	scheduleRepo  repository.ScheduleRepository
	bookingRepo   repository.BookingRepository
	branchRepo    repository.BranchRepository
	userRepo      repository.UserRepository
	memberRepo    repository.MemberRepository
	txManager     repository.TxManager
}

// NewClassService creates a new class service
func NewClassService(
	classTypeRepo repository.ClassTypeRepository,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	txManager repository.TxManager,
) *ClassService {
	return &ClassService{
		classTypeRepo: classTypeRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		branchRepo:    branchRepo,
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		txManager:     txManager,
	}
}

// CreateClassType creates a class type with a unique name
func (s *ClassService) CreateClassType(ctx context.Context, name string) (*entity.ClassType, error) {
	name = strings.TrimSpace(name)
	existing, err := s.classTypeRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Class type already exists")
	}

	classType := &entity.ClassType{Name: name}
	if err := s.classTypeRepo.Create(ctx, classType); err != nil {
		return nil, err
	}
	return classType, nil
}

// ListClassTypes returns all class types
func (s *ClassService) ListClassTypes(ctx context.Context) ([]entity.ClassType, error) {
	return s.classTypeRepo.List(ctx)
}

// ScheduleInput represents schedule fields. Nil fields are left unchanged on update.
type ScheduleInput struct {
	BranchID    *uuid.UUID
	ClassTypeID *uuid.UUID
	TrainerID   *uuid.UUID
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Capacity    *int
	Status      *string
}

// CreateSchedule schedules a class session
func (s *ClassService) CreateSchedule(ctx context.Context, input *ScheduleInput) (*entity.ScheduleView, error) {
	var missing []apperror.FieldError
	require := func(field string, absent bool) {
		if absent {
			missing = append(missing, apperror.FieldError{Field: field, Message: field + " is required"})
		}
	}
	require("branch_id", input.BranchID == nil)
	require("class_type_id", input.ClassTypeID == nil)
	require("trainer_id", input.TrainerID == nil)
	require("date", input.Date == nil)
	require("start_time", input.StartTime == nil)
	require("end_time", input.EndTime == nil)
	require("capacity", input.Capacity == nil)
	if len(missing) > 0 {
		return nil, apperror.NewValidationError(missing)
	}

	schedule := &entity.ClassSchedule{
		Status:  enum.StatusActive,
		Members: []uuid.UUID{},
	}
	if err := s.applySchedule(ctx, schedule, input); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return s.GetSchedule(ctx, schedule.ID)
}

// applySchedule merges input into schedule and validates the result
func (s *ClassService) applySchedule(ctx context.Context, schedule *entity.ClassSchedule, input *ScheduleInput) error {
	if input.BranchID != nil {
		if !repository.CanAccessBranch(ctx, input.BranchID) {
			return apperror.ErrForbidden
		}
		branch, err := s.branchRepo.GetByID(ctx, *input.BranchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return apperror.NewNotFoundError("Branch")
		}
		schedule.BranchID = *input.BranchID
	}
	if input.ClassTypeID != nil {
		classType, err := s.classTypeRepo.GetByID(ctx, *input.ClassTypeID)
		if err != nil {
			return err
		}
		if classType == nil {
			return apperror.NewNotFoundError("Class type")
		}
		schedule.ClassTypeID = *input.ClassTypeID
	}
	if input.TrainerID != nil {
		trainer, err := s.userRepo.GetByID(ctx, *input.TrainerID)
		if err != nil {
			return err
		}
		if trainer == nil {
			return apperror.NewNotFoundError("Trainer")
		}
		schedule.TrainerID = *input.TrainerID
	}
	if input.Date != nil {
		schedule.Date = calc.StartOfDay(*input.Date)
		schedule.Day = schedule.Date.Weekday().String()
	}
	if input.StartTime != nil {
		schedule.StartTime = strings.TrimSpace(*input.StartTime)
	}
	if input.EndTime != nil {
		schedule.EndTime = strings.TrimSpace(*input.EndTime)
	}
	if input.Capacity != nil {
		schedule.Capacity = *input.Capacity
	}
	if input.Status != nil && *input.Status != "" {
		schedule.Status = *input.Status
	}

	return validateSchedule(schedule)
}

func validateSchedule(schedule *entity.ClassSchedule) error {
	var errs []apperror.FieldError

	start, startErr := time.Parse(ClockLayout, schedule.StartTime)
	if startErr != nil {
		errs = append(errs, apperror.FieldError{Field: "start_time", Message: "must be a time in HH:MM format"})
	}
	end, endErr := time.Parse(ClockLayout, schedule.EndTime)
	if endErr != nil {
		errs = append(errs, apperror.FieldError{Field: "end_time", Message: "must be a time in HH:MM format"})
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, apperror.FieldError{Field: "end_time", Message: "must be after start_time"})
	}
	if schedule.Capacity <= 0 {
		errs = append(errs, apperror.FieldError{Field: "capacity", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// ListSchedules returns schedules in the caller's branch scope with their booked counts
func (s *ClassService) ListSchedules(ctx context.Context) ([]entity.ScheduleView, error) {
	return s.scheduleRepo.ListViews(ctx)
}

// GetSchedule returns a schedule with display names and booked count
func (s *ClassService) GetSchedule(ctx context.Context, id uuid.UUID) (*entity.ScheduleView, error) {
	view, err := s.scheduleRepo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperror.NewNotFoundError("Class schedule")
	}
	return view, nil
}

// UpdateSchedule applies a partial update. Capacity cannot drop below the current bookings.
func (s *ClassService) UpdateSchedule(ctx context.Context, id uuid.UUID, input *ScheduleInput) (*entity.ScheduleView, error) {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		schedule, err := s.lockSchedule(ctx, id)
		if err != nil {
			return err
		}
		if err := s.applySchedule(ctx, schedule, input); err != nil {
			return err
		}

		booked, err := s.bookingRepo.CountBySchedule(ctx, id)
		if err != nil {
			return err
		}
		if int64(schedule.Capacity) < booked {
			return apperror.NewFieldError("capacity", "must not be below the number of bookings")
		}
		return s.scheduleRepo.Update(ctx, schedule)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSchedule(ctx, id)
}

// DeleteSchedule removes a schedule and its bookings in one transaction
func (s *ClassService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.lockSchedule(ctx, id)
		if err != nil {
			return err
		}
		if err := s.bookingRepo.DeleteBySchedule(ctx, id); err != nil {
			return err
		}
		return s.scheduleRepo.Delete(ctx, id)
	})
}

// lockSchedule loads a schedule for update and refuses callers scoped to another branch.
func (s *ClassService) lockSchedule(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error) {
	schedule, err := s.scheduleRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperror.NewNotFoundError("Class schedule")
	}
	if !repository.CanAccessBranch(ctx, &schedule.BranchID) {
		return nil, apperror.ErrForbidden
	}
	return schedule, nil
}

// Book reserves a place for a member. The schedule row stays locked while the
// bookings are counted, so concurrent requests cannot overfill a class.
func (s *ClassService) Book(ctx context.Context, scheduleID, memberID uuid.UUID) (*entity.Booking, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	if !member.IsActive() {
		return nil, apperror.ErrMemberInactive
	}

	var booking *entity.Booking
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		schedule, err := s.lockSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}

		existing, err := s.bookingRepo.Get(ctx, memberID, scheduleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("You have already booked this class")
		}

		booked, err := s.bookingRepo.CountBySchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if booked >= int64(schedule.Capacity) {
			return errClassFull
		}

		booking = &entity.Booking{MemberID: memberID, ScheduleID: scheduleID}
		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			return err
		}

		schedule.Members = append(schedule.Members, memberID)
		return s.scheduleRepo.Update(ctx, schedule)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel removes a member's booking
func (s *ClassService) Cancel(ctx context.Context, scheduleID, memberID uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		schedule, err := s.lockSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}

		booking, err := s.bookingRepo.Get(ctx, memberID, scheduleID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NewBadRequestError("You have not booked this class")
		}
		if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
			return err
		}

		members := schedule.Members[:0]
		for _, id := range schedule.Members {
			if id != memberID {
				members = append(members, id)
			}
		}
		schedule.Members = members
		return s.scheduleRepo.Update(ctx, schedule)
	})
}

// MemberBookings returns a member's bookings with class details
func (s *ClassService) MemberBookings(ctx context.Context, memberID uuid.UUID) ([]entity.BookingView, error) {
	return s.bookingRepo.ListByMember(ctx, memberID)
}

// ScheduleBookings returns the bookings of one schedule
func (s *ClassService) ScheduleBookings(ctx context.Context, scheduleID uuid.UUID) ([]entity.Booking, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperror.NewNotFoundError("Class schedule")
	}
	if !repository.CanAccessBranch(ctx, &schedule.BranchID) {
		return nil, apperror.ErrForbidden
	}
	return s.bookingRepo.ListBySchedule(ctx, scheduleID)
}
