package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanRequest is shared by create and update; absent fields keep their value
type PlanRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=255"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	DurationDays *int             `json:"duration_days" binding:"omitempty,min=0"`
	Price        *decimal.Decimal `json:"price"`
	Description  *string          `json:"description"`
	BranchID     *uuid.UUID       `json:"branch_id"`
	Status       *string          `json:"status" binding:"omitempty,oneof=Active Inactive"`
}
