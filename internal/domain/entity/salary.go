package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PayrollLineItem is a named bonus or deduction. Amount is required; a nil amount is rejected.
type PayrollLineItem struct {
	Name   string           `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
}

// Salary is one payroll record for a staff user over a pay period
type Salary struct {
	ID              uuid.UUID                           `gorm:"type:uuid;primary_key" json:"id"`
	SalaryRef       string                              `gorm:"size:50;uniqueIndex;not null" json:"salary_id"`
	StaffID         uuid.UUID                           `gorm:"type:uuid;not null;index" json:"staff_id"`
	Role            string                              `gorm:"size:100" json:"role"`
	PeriodStart     time.Time                           `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd       time.Time                           `gorm:"type:date;not null" json:"period_end"`
	HoursWorked     decimal.Decimal                     `gorm:"type:decimal(10,2);not null;default:0" json:"hours_worked"`
	HourlyRate      decimal.Decimal                     `gorm:"type:decimal(12,2);not null;default:0" json:"hourly_rate"`
	HourlyTotal     decimal.Decimal                     `gorm:"type:decimal(16,4);not null;default:0" json:"hourly_total"`
	FixedSalary     decimal.Decimal                     `gorm:"type:decimal(14,2);not null;default:0" json:"fixed_salary"`
	CommissionTotal decimal.Decimal                     `gorm:"type:decimal(14,2);not null;default:0" json:"commission_total"`
	Bonuses         datatypes.JSONSlice[PayrollLineItem] `json:"bonuses"`
	Deductions      datatypes.JSONSlice[PayrollLineItem] `json:"deductions"`
	NetPay          decimal.Decimal                     `gorm:"type:decimal(16,4);not null;default:0" json:"net_pay"`
	Status          string                              `gorm:"size:50;not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time                           `json:"created_at"`
	UpdatedAt       time.Time                           `json:"updated_at"`

	Staff *User `gorm:"foreignKey:StaffID" json:"-"`
}

func (s *Salary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Salary) TableName() string {
	return "salaries"
}

// SalaryView is a salary joined with the staff member's name
type SalaryView struct {
	Salary
	FullName string `json:"full_name"`
}
