package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

type CreateMemberRequest struct {
	FullName       string            `json:"full_name" binding:"required,min=2,max=255"`
	Email          string            `json:"email" binding:"required,email"`
	Password       string            `json:"password" binding:"required,min=6"`
	Phone          *string           `json:"phone" binding:"omitempty,max=50"`
	Gender         *string           `json:"gender" binding:"omitempty,gender"`
	DateOfBirth    *Date             `json:"date_of_birth"`
	Address        *string           `json:"address"`
	InterestedIn   *string           `json:"interested_in" binding:"omitempty,max=255"`
	PlanID         *uuid.UUID        `json:"plan_id"`
	MembershipFrom *Date             `json:"membership_from"`
	PaymentMode    *enum.PaymentMode `json:"payment_mode"`
	AmountPaid     decimal.Decimal   `json:"amount_paid"`
	BranchID       *uuid.UUID        `json:"branch_id"`
}

// UpdateMemberRequest merges into the stored member; an empty password keeps the stored one
type UpdateMemberRequest struct {
	FullName       *string           `json:"full_name" binding:"omitempty,min=2,max=255"`
	Email          *string           `json:"email" binding:"omitempty,email"`
	Password       string            `json:"password" binding:"omitempty,min=6"`
	Phone          *string           `json:"phone" binding:"omitempty,max=50"`
	Gender         *string           `json:"gender" binding:"omitempty,gender"`
	DateOfBirth    *Date             `json:"date_of_birth"`
	Address        *string           `json:"address"`
	InterestedIn   *string           `json:"interested_in" binding:"omitempty,max=255"`
	PlanID         *uuid.UUID        `json:"plan_id"`
	MembershipFrom *Date             `json:"membership_from"`
	PaymentMode    *enum.PaymentMode `json:"payment_mode"`
	AmountPaid     *decimal.Decimal  `json:"amount_paid"`
	BranchID       *uuid.UUID        `json:"branch_id"`
	Status         *string           `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// RecordPaymentRequest records a payment; with a plan it renews the membership
type RecordPaymentRequest struct {
	PlanID    *uuid.UUID       `json:"plan_id"`
	Amount    *decimal.Decimal  `json:"amount" binding:"required"`
	Mode      *enum.PaymentMode `json:"mode" binding:"required"`
	Reference *string           `json:"reference" binding:"omitempty,max=255"`
}
