package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente simples, sem login, vinculado à empresa
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone,omitempty"`
	Email string `gorm:"size:100" json:"email,omitempty"`
	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
