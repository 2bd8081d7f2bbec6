package request

import "github.com/google/uuid"

type CreateTaskRequest struct {
	Category    string     `json:"category" binding:"required,max=100"`
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,max=50"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	BranchID    *uuid.UUID `json:"branch_id"`
}

// UpdateTaskRequest is a partial update; absent fields keep stored values
type UpdateTaskRequest struct {
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,max=50"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	BranchID    *uuid.UUID `json:"branch_id"`
}
