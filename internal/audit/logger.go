package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// GormWriter stores events in the audit_logs table.
type GormWriter struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormWriter {
	return &GormWriter{db: db}
}

var _ Writer = (*GormWriter)(nil)

func (w *GormWriter) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		CompanyID: ev.CompanyID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}

	return w.db.WithContext(ctx).Create(&row).Error
}
