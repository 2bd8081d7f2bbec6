package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassType names a kind of group class such as Yoga or Spin
type ClassType struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ClassType) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (ClassType) TableName() string {
	return "class_types"
}

// ClassSchedule is one session of a class at a branch
type ClassSchedule struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primary_key" json:"id"`
	BranchID    uuid.UUID                     `gorm:"type:uuid;not null;index" json:"branch_id"`
	ClassTypeID uuid.UUID                     `gorm:"type:uuid;not null;index" json:"class_type_id"`
	TrainerID   uuid.UUID                     `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Date        time.Time                     `gorm:"type:date;not null;index" json:"date"`
	Day         string                        `gorm:"size:20;not null" json:"day"`
	StartTime   string                        `gorm:"size:5;not null" json:"start_time"`
	EndTime     string                        `gorm:"size:5;not null" json:"end_time"`
	Capacity    int                           `gorm:"not null" json:"capacity"`
	Status      string                        `gorm:"size:20;not null;default:'Active'" json:"status"`
	Members     datatypes.JSONSlice[uuid.UUID] `json:"members"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`

	ClassType *ClassType `gorm:"foreignKey:ClassTypeID" json:"class_type,omitempty"`
	Trainer   *User      `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Branch    *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (s *ClassSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (ClassSchedule) TableName() string {
	return "class_schedules"
}

// ScheduleView is a schedule joined with display names and its booked count
type ScheduleView struct {
	ClassSchedule
	ClassTypeName string `json:"class_type_name"`
	TrainerName   string `json:"trainer_name"`
	BranchName    string `json:"branch_name"`
	BookedCount   int64  `json:"booked_count"`
}

// Booking reserves a place for a member in a scheduled class
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MemberID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_member_schedule" json:"member_id"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_member_schedule;index" json:"schedule_id"`
	CreatedAt  time.Time `json:"created_at"`

	Schedule *ClassSchedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	Member   *Member        `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingView is a member's booking joined with the class details
type BookingView struct {
	ID          uuid.UUID `json:"id"`
	MemberID    uuid.UUID `json:"member_id"`
	ScheduleID  uuid.UUID `json:"schedule_id"`
	CreatedAt   time.Time `json:"created_at"`
	Date        time.Time `json:"date"`
	Day         string    `json:"day"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ClassName   string    `json:"class_name"`
	TrainerName string    `json:"trainer_name"`
}
