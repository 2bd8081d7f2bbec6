package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Member is a gym customer holding (or having held) a membership
type Member struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	FullName       string            `gorm:"size:255;not null" json:"full_name"`
	Email          string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string            `gorm:"size:255;not null" json:"-"`
	Phone          *string           `gorm:"size:50;uniqueIndex" json:"phone,omitempty"`
	Gender         *string           `gorm:"size:20" json:"gender,omitempty"`
	DateOfBirth    *time.Time        `gorm:"type:date" json:"date_of_birth,omitempty"`
	Address        *string           `gorm:"type:text" json:"address,omitempty"`
	InterestedIn   *string           `gorm:"size:255" json:"interested_in,omitempty"`
	PlanID         *uuid.UUID        `gorm:"type:uuid;index" json:"plan_id,omitempty"`
	MembershipFrom time.Time         `gorm:"type:date;not null" json:"membership_from"`
	MembershipTo   *time.Time        `gorm:"type:date;index" json:"membership_to"`
	PaymentMode    *enum.PaymentMode `json:"payment_mode,omitempty"`
	AmountPaid     decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	BranchID       *uuid.UUID        `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	AdminID        *uuid.UUID        `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	Status         string            `gorm:"size:20;not null;default:'Active';index" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	Plan   *Plan   `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Member) TableName() string {
	return "members"
}

// IsActive reports whether the member account is enabled
func (m *Member) IsActive() bool {
	return m.Status == enum.StatusActive
}

// HasValidMembership reports whether the membership covers the given day
func (m *Member) HasValidMembership(day time.Time) bool {
	if m.MembershipTo == nil {
		return m.PlanID == nil
	}
	return !m.MembershipTo.Before(day)
}

// MemberAttendance is a single check-in at the front desk
type MemberAttendance struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	MemberID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"member_id"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	CheckInAt   time.Time  `gorm:"not null;index" json:"check_in_at"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (a *MemberAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (MemberAttendance) TableName() string {
	return "member_attendance"
}

// Payment is money received against a membership
type Payment struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	MemberID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"member_id"`
	PlanID     *uuid.UUID       `gorm:"type:uuid;index" json:"plan_id,omitempty"`
	BranchID   *uuid.UUID       `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Amount     decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
	Mode       enum.PaymentMode `gorm:"not null;default:0" json:"mode"`
	Reference  *string          `gorm:"size:100" json:"reference,omitempty"`
	PeriodFrom *time.Time       `gorm:"type:date" json:"period_from,omitempty"`
	PeriodTo   *time.Time       `gorm:"type:date" json:"period_to,omitempty"`
	PaidAt     time.Time        `gorm:"not null;index" json:"paid_at"`
	RecordedBy *uuid.UUID       `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`

	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}
