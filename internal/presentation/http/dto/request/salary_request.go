package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one named bonus or deduction
type LineItemRequest struct {
	Name   string           `json:"name" binding:"required,max=100"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// SalaryRequest is shared by create and update. On update the stored record is
// merged with the present fields and the totals are recomputed.
type SalaryRequest struct {
	SalaryID        *string           `json:"salary_id" binding:"omitempty,max=50"`
	StaffID         *uuid.UUID        `json:"staff_id"`
	Role            *string           `json:"role" binding:"omitempty,max=100"`
	PeriodStart     *Date             `json:"period_start"`
	PeriodEnd       *Date             `json:"period_end"`
	HoursWorked     *decimal.Decimal  `json:"hours_worked"`
	HourlyRate      *decimal.Decimal  `json:"hourly_rate"`
	FixedSalary     *decimal.Decimal  `json:"fixed_salary"`
	CommissionTotal *decimal.Decimal  `json:"commission_total"`
	Bonuses         []LineItemRequest `json:"bonuses" binding:"omitempty,dive"`
	Deductions      []LineItemRequest `json:"deductions" binding:"omitempty,dive"`
	Status          *string           `json:"status" binding:"omitempty,max=50"`
}
