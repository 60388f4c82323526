package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type AuditLogFilter struct {
	CompanyID uuid.UUID
	Action    string
	Entity    string
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// List returns one page, newest first, and the total matching rows.
func (r *AuditLogGormRepository) List(ctx context.Context, f AuditLogFilter) ([]models.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("company_id = ?", f.CompanyID)

	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		query = query.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
