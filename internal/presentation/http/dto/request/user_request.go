package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateUserRequest onboards a staff account. The gym fields are filled when a
// super admin registers a gym owner.
type CreateUserRequest struct {
	FullName string     `json:"full_name" binding:"required,min=2,max=255"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	RoleID   uint       `json:"role_id" binding:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
	Status   string     `json:"status" binding:"omitempty,oneof=Active Inactive"`

	GymName      *string          `json:"gym_name" binding:"omitempty,max=255"`
	Address      *string          `json:"address"`
	PlanName     *string          `json:"plan_name" binding:"omitempty,max=255"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days" binding:"omitempty,min=0"`
	Description  *string          `json:"description"`
}

// UpdateUserRequest is a partial update; an empty password keeps the stored one
type UpdateUserRequest struct {
	FullName *string    `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email    *string    `json:"email" binding:"omitempty,email"`
	Password string     `json:"password" binding:"omitempty,min=8"`
	Phone    *string    `json:"phone" binding:"omitempty,max=50"`
	RoleID   *uint      `json:"role_id"`
	BranchID *uuid.UUID `json:"branch_id"`
	Status   *string    `json:"status" binding:"omitempty,oneof=Active Inactive"`

	GymName      *string          `json:"gym_name" binding:"omitempty,max=255"`
	Address      *string          `json:"address"`
	PlanName     *string          `json:"plan_name" binding:"omitempty,max=255"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days" binding:"omitempty,min=0"`
	Description  *string          `json:"description"`
}

// SyncPermissionsRequest replaces the permission set of a role
type SyncPermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}
