package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CompanyID uuid.UUID `gorm:"type:uuid;index:idx_appointments_company_start,priority:1;not null" json:"company_id"`

	StaffID uuid.UUID `gorm:"type:uuid;index:idx_appointments_staff_start,priority:1;not null" json:"staff_id"`
	Staff   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uuid.UUID `gorm:"type:uuid;not null" json:"client_id"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartDatetime time.Time `gorm:"index:idx_appointments_company_start,priority:2;index:idx_appointments_staff_start,priority:2;not null" json:"start_datetime"`
	EndDatetime   time.Time `gorm:"not null" json:"end_datetime"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	PriceSnapshot decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price_snapshot"`

	Notes string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
