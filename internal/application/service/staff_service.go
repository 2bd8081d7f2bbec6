package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/utils"
)

var errOtherBranchStaff = apperror.NewAppError(http.StatusForbidden, "You cannot access staff from another branch")

// StaffService manages staff accounts together with their HR profiles
type StaffService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	branchRepo repository.BranchRepository
	staffRepo  repository.StaffRepository
	txManager  repository.TxManager
	now        func() time.Time
}

// NewStaffService creates a new staff service
func NewStaffService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	branchRepo repository.BranchRepository,
	staffRepo repository.StaffRepository,
	txManager repository.TxManager,
) *StaffService {
	return &StaffService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		branchRepo: branchRepo,
		staffRepo:  staffRepo,
		txManager:  txManager,
		now:        time.Now,
	}
}

// CreateStaffInput represents the input for hiring a staff member
type CreateStaffInput struct {
	FullName     string
	Email        string
	Password     string
	Phone        *string
	RoleID       uint
	BranchID     uuid.UUID
	Gender       string
	DateOfBirth  time.Time
	JoinDate     time.Time
	ProfilePhoto *string
	AdminID      uuid.UUID
}

// CreateStaff creates the user account and staff profile in one transaction
func (s *StaffService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Staff, error) {
	if !repository.CanAccessBranch(ctx, &input.BranchID) {
		return nil, errOtherBranchStaff
	}
	if err := s.checkRole(ctx, input.RoleID); err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, input.BranchID); err != nil {
		return nil, err
	}

	emailAddr := normalizeEmail(input.Email)
	existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	adminID := input.AdminID
	branchID := input.BranchID
	gender := input.Gender
	dob := input.DateOfBirth
	joined := input.JoinDate

	user := &entity.User{
		FullName: input.FullName,
		Email:    emailAddr,
		Password: hashed,
		Phone:    input.Phone,
		Provider: "local",
		RoleID:   input.RoleID,
		BranchID: &branchID,
		AdminID:  &adminID,
		Status:   enum.StatusActive,
	}
	profile := &entity.StaffProfile{
		AdminID:      &adminID,
		BranchID:     &branchID,
		Gender:       &gender,
		DateOfBirth:  &dob,
		JoinDate:     &joined,
		ProfilePhoto: input.ProfilePhoto,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return s.staffRepo.CreateProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.GetStaff(ctx, user.ID)
}

func (s *StaffService) checkRole(ctx context.Context, roleID uint) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apperror.NewFieldError("role_id", "Role does not exist")
	}
	if role.Name == entity.RoleSuperAdmin {
		return apperror.NewFieldError("role_id", "Staff cannot be super admins")
	}
	return nil
}

func (s *StaffService) checkBranch(ctx context.Context, branchID uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewFieldError("branch_id", "Branch does not exist")
	}
	return nil
}

// ListStaff returns the staff in the caller's branch scope
func (s *StaffService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	return s.staffRepo.List(ctx)
}

// GetStaff returns a staff member. Staff from another branch are forbidden.
func (s *StaffService) GetStaff(ctx context.Context, userID uuid.UUID) (*entity.Staff, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsSuperAdmin() {
		return nil, apperror.NewNotFoundError("Staff")
	}
	if !repository.CanAccessBranch(ctx, user.BranchID) {
		return nil, errOtherBranchStaff
	}

	profile, err := s.staffRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.Staff{User: *user, Profile: profile}, nil
}

// UpdateStaffInput represents a partial staff update. An empty password keeps the stored one.
type UpdateStaffInput struct {
	FullName     *string
	Email        *string
	Password     string
	Phone        *string
	RoleID       *uint
	BranchID     *uuid.UUID
	Status       *string
	Gender       *string
	DateOfBirth  *time.Time
	JoinDate     *time.Time
	ExitDate     *time.Time
	ProfilePhoto *string
}

// UpdateStaff updates the user account and profile in one transaction
func (s *StaffService) UpdateStaff(ctx context.Context, userID uuid.UUID, input *UpdateStaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := &staff.User
	profile := staff.Profile
	if profile == nil {
		profile = &entity.StaffProfile{UserID: user.ID, AdminID: user.AdminID, BranchID: user.BranchID}
	}

	if input.Email != nil {
		emailAddr := normalizeEmail(*input.Email)
		if emailAddr != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, apperror.NewConflictError("Email already registered")
			}
			user.Email = emailAddr
		}
	}
	if input.RoleID != nil && *input.RoleID != user.RoleID {
		if err := s.checkRole(ctx, *input.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *input.RoleID
		user.Role = entity.Role{}
	}
	if input.BranchID != nil {
		if !repository.CanAccessBranch(ctx, input.BranchID) {
			return nil, errOtherBranchStaff
		}
		if err := s.checkBranch(ctx, *input.BranchID); err != nil {
			return nil, err
		}
		user.BranchID = input.BranchID
		user.Branch = nil
		profile.BranchID = input.BranchID
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.JoinDate != nil {
		profile.JoinDate = input.JoinDate
	}
	if input.ExitDate != nil {
		profile.ExitDate = input.ExitDate
	}
	if input.ProfilePhoto != nil {
		profile.ProfilePhoto = input.ProfilePhoto
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.saveProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.GetStaff(ctx, userID)
}

func (s *StaffService) saveProfile(ctx context.Context, profile *entity.StaffProfile) error {
	if profile.ID == uuid.Nil {
		return s.staffRepo.CreateProfile(ctx, profile)
	}
	return s.staffRepo.UpdateProfile(ctx, profile)
}

// DeleteStaff deactivates the account and records today as the exit date
func (s *StaffService) DeleteStaff(ctx context.Context, userID uuid.UUID) error {
	staff, err := s.GetStaff(ctx, userID)
	if err != nil {
		return err
	}

	user := &staff.User
	user.Status = enum.StatusInactive

	profile := staff.Profile
	if profile == nil {
		profile = &entity.StaffProfile{UserID: user.ID, AdminID: user.AdminID, BranchID: user.BranchID}
	}
	exit := calc.StartOfDay(s.now())
	profile.ExitDate = &exit

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.saveProfile(ctx, profile)
	})
}
