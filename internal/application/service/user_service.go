package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// UserService handles staff account management
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	branchRepo     repository.BranchRepository
	now            func() time.Time
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	branchRepo repository.BranchRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		branchRepo:     branchRepo,
		now:            time.Now,
	}
}

// GymDetails are the gym owner fields captured when onboarding an admin
type GymDetails struct {
	GymName      *string
	Address      *string
	PlanName     *string
	Price        *decimal.Decimal
	DurationDays *int
	Description  *string
}

// CreateUserInput represents the input for registering a staff account
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Phone    *string
	RoleID   uint
	BranchID *uuid.UUID
	Status   string
	AdminID  uuid.UUID
	GymDetails
}

// CreateUser registers a staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	emailAddr := normalizeEmail(input.Email)
	existing, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	if err := s.checkRole(ctx, input.RoleID); err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, input.BranchID); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.StatusActive
	}

	adminID := input.AdminID
	user := &entity.User{
		FullName: input.FullName,
		Email:    emailAddr,
		Password: hashed,
		Phone:    input.Phone,
		Provider: "local",
		RoleID:   input.RoleID,
		BranchID: input.BranchID,
		AdminID:  &adminID,
		Status:   status,
	}
	applyGymDetails(user, input.GymDetails)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, user.ID)
}

func (s *UserService) checkRole(ctx context.Context, roleID uint) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apperror.NewFieldError("role_id", "Role does not exist")
	}
	return nil
}

func (s *UserService) checkBranch(ctx context.Context, branchID *uuid.UUID) error {
	if branchID == nil {
		return nil
	}
	branch, err := s.branchRepo.GetByID(ctx, *branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewFieldError("branch_id", "Branch does not exist")
	}
	return nil
}

func applyGymDetails(user *entity.User, d GymDetails) {
	if d.GymName != nil {
		user.GymName = d.GymName
	}
	if d.Address != nil {
		user.Address = d.Address
	}
	if d.PlanName != nil {
		user.PlanName = d.PlanName
	}
	if d.Price != nil {
		user.Price = d.Price
	}
	if d.DurationDays != nil {
		user.DurationDays = d.DurationDays
	}
	if d.Description != nil {
		user.Description = d.Description
	}
}

// ListUsers returns a paginated list of staff accounts
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.ResultFor(users, total, params), nil
}

// GetUser returns a staff account with its role and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents a partial staff account update. An empty password keeps the stored one.
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Password string
	Phone    *string
	RoleID   *uint
	BranchID *uuid.UUID
	Status   *string
	GymDetails
}

// UpdateUser applies a partial update to a staff account
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
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
		if err := s.checkBranch(ctx, input.BranchID); err != nil {
			return nil, err
		}
		user.BranchID = input.BranchID
		user.Branch = nil
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
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	applyGymDetails(user, input.GymDetails)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, user.ID)
}

// DeleteUser soft deletes a staff account
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// ListAdmins returns every gym admin account
func (s *UserService) ListAdmins(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.ListByRole(ctx, entity.RoleAdmin)
}

// UserStats is the super admin overview
type UserStats struct {
	TotalAdmins   int64 `json:"total_admins"`
	TotalBranches int64 `json:"total_branches"`
	NewUsersToday int64 `json:"new_users_today"`
}

// GetStats returns the super admin overview counts
func (s *UserService) GetStats(ctx context.Context) (*UserStats, error) {
	admins, err := s.userRepo.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	branches, err := s.branchRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	newToday, err := s.userRepo.CountCreatedSince(ctx, calc.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalAdmins:   admins,
		TotalBranches: branches,
		NewUsersToday: newToday,
	}, nil
}

// ListRoles returns all roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// SyncRolePermissions replaces the permissions granted to a role
func (s *UserService) SyncRolePermissions(ctx context.Context, roleID uint, names []string) (*entity.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}
	if role.Name == entity.RoleSuperAdmin {
		return nil, apperror.NewBadRequestError("Super admin permissions cannot be changed")
	}

	ids := make([]uint, 0, len(names))
	for _, name := range names {
		perm, err := s.permissionRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if perm == nil {
			return nil, apperror.NewFieldError("permissions", "Unknown permission "+name)
		}
		ids = append(ids, perm.ID)
	}

	if err := s.roleRepo.SyncPermissions(ctx, roleID, ids); err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(ctx, roleID)
}
