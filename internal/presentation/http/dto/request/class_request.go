package request

import "github.com/google/uuid"

type CreateClassTypeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateScheduleRequest struct {
	BranchID    *uuid.UUID `json:"branch_id" binding:"required"`
	ClassTypeID *uuid.UUID `json:"class_type_id" binding:"required"`
	TrainerID   *uuid.UUID `json:"trainer_id" binding:"required"`
	Date        *Date      `json:"date" binding:"required"`
	StartTime   *string    `json:"start_time" binding:"required,clock"`
	EndTime     *string    `json:"end_time" binding:"required,clock"`
	Capacity    *int       `json:"capacity" binding:"required,gt=0"`
	Status      *string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateScheduleRequest is a partial update
type UpdateScheduleRequest struct {
	BranchID    *uuid.UUID `json:"branch_id"`
	ClassTypeID *uuid.UUID `json:"class_type_id"`
	TrainerID   *uuid.UUID `json:"trainer_id"`
	Date        *Date      `json:"date"`
	StartTime   *string    `json:"start_time" binding:"omitempty,clock"`
	EndTime     *string    `json:"end_time" binding:"omitempty,clock"`
	Capacity    *int       `json:"capacity" binding:"omitempty,gt=0"`
	Status      *string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// BookingRequest is sent by staff booking on behalf of a member
type BookingRequest struct {
	MemberID uuid.UUID `json:"member_id" binding:"required"`
}
