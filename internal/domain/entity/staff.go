package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffProfile holds HR details for a staff user account
type StaffProfile struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	AdminID      *uuid.UUID `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Gender       *string    `gorm:"size:20" json:"gender,omitempty"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	JoinDate     *time.Time `gorm:"type:date" json:"join_date,omitempty"`
	ExitDate     *time.Time `gorm:"type:date" json:"exit_date,omitempty"`
	ProfilePhoto *string    `gorm:"size:255" json:"profile_photo,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (s *StaffProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}

// Staff is a staff user joined with its profile
type Staff struct {
	User    User          `json:"user"`
	Profile *StaffProfile `json:"profile,omitempty"`
}
