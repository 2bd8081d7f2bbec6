package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HousekeepingTask is a cleaning or maintenance job, optionally assigned to a staff user
type HousekeepingTask struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Status      string     `gorm:"size:50;not null;default:'Pending'" json:"status"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *HousekeepingTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (HousekeepingTask) TableName() string {
	return "housekeeping_tasks"
}
