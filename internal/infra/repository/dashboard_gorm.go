package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appointmentDomain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

var _ metrics.Repository = (*DashboardGormRepository)(nil)

func (r *DashboardGormRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return findCompany(ctx, r.db, id)
}

// ListWindow keeps insertion order among equal start times so the
// recent no-show list is stable.
func (r *DashboardGormRepository) ListWindow(
	ctx context.Context,
	companyID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var list []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("company_id = ?", companyID).
		Where("start_datetime >= ? AND start_datetime <= ?", start, end).
		Order("start_datetime ASC").
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *DashboardGormRepository) ListUpcoming(
	ctx context.Context,
	companyID uuid.UUID,
	from time.Time,
	to time.Time,
	limit int,
) ([]models.Appointment, error) {

	var list []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("company_id = ?", companyID).
		Where("status IN ?", []string{
			string(appointmentDomain.StatusScheduled),
			string(appointmentDomain.StatusConfirmed),
		}).
		Where("start_datetime >= ? AND start_datetime <= ?", from, to).
		Order("start_datetime ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *DashboardGormRepository) CountClients(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) CountActiveServices(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("company_id = ? AND active = ?", companyID, true).
		Count(&n).Error
	return n, err
}
