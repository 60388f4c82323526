package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is an item of the company catalog that can be booked.
type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`

	Name               string          `gorm:"size:100;not null" json:"name"`
	DurationMinutes    int             `gorm:"not null" json:"duration_minutes"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ReturnIntervalDays *int            `json:"return_interval_days,omitempty"`
	Active             bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
