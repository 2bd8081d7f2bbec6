package request

import "github.com/google/uuid"

type CreateStaffRequest struct {
	FullName     string    `json:"full_name" binding:"required,min=2,max=255"`
	Email        string    `json:"email" binding:"required,email"`
	Password     string    `json:"password" binding:"required,min=8"`
	Phone        *string   `json:"phone" binding:"omitempty,max=50"`
	RoleID       uint      `json:"role_id" binding:"required"`
	BranchID     uuid.UUID `json:"branch_id" binding:"required"`
	Gender       string    `json:"gender" binding:"required,gender"`
	DateOfBirth  *Date     `json:"date_of_birth" binding:"required"`
	JoinDate     *Date     `json:"join_date" binding:"required"`
	ProfilePhoto *string   `json:"profile_photo" binding:"omitempty,url"`
}

// UpdateStaffRequest touches the user row and the profile row; absent fields are kept
type UpdateStaffRequest struct {
	FullName     *string    `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	Password     string     `json:"password" binding:"omitempty,min=8"`
	Phone        *string    `json:"phone" binding:"omitempty,max=50"`
	RoleID       *uint      `json:"role_id"`
	BranchID     *uuid.UUID `json:"branch_id"`
	Status       *string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Gender       *string    `json:"gender" binding:"omitempty,gender"`
	DateOfBirth  *Date      `json:"date_of_birth"`
	JoinDate     *Date      `json:"join_date"`
	ExitDate     *Date      `json:"exit_date"`
	ProfilePhoto *string    `json:"profile_photo" binding:"omitempty,url"`
}
