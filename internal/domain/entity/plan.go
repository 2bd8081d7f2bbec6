package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Plan is a purchasable membership product
type Plan struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Category     string          `gorm:"size:50;not null;default:'General';index" json:"category"`
	DurationDays int             `gorm:"not null;default:0" json:"duration_days"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	BranchID     *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Status       string          `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Plan) TableName() string {
	return "plans"
}
