package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCompany(
	ctx context.Context,
	id uuid.UUID,
) (*models.Company, error) {
	return findCompany(ctx, r.db, id)
}

// --------------------------------------------------
// Service / Client / Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	companyID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", serviceID, companyID).
		First(&service).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	companyID uuid.UUID,
	clientID uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", clientID, companyID).
		First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	companyID uuid.UUID,
	staffID uuid.UUID,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", staffID, companyID).
		Where("role IN ?", []models.UserRole{models.RoleOwner, models.RoleStaff}).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentIfFree locks the staff row so concurrent bookings for
// the same person run one after the other, hands the intersecting
// non-canceled appointments to check and inserts only if check passes.
func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
	check domain.ConflictCheck,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var staff models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND company_id = ?", ap.StaffID, ap.CompanyID).
			First(&staff).Error; err != nil {
			return translate(err)
		}

		var existing []models.Appointment
		if err := tx.
			Where("company_id = ? AND staff_id = ?", ap.CompanyID, ap.StaffID).
			Where("status <> ?", string(domain.StatusCanceled)).
			Where("start_datetime < ? AND end_datetime > ?", ap.EndDatetime, ap.StartDatetime).
			Order("start_datetime ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		if err := check(existing); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (status)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	companyID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("id = ? AND company_id = ?", appointmentID, companyID).
		First(&ap).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND company_id = ?", ap.ID, ap.CompanyID).
		Update("status", ap.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsInWindow(
	ctx context.Context,
	q domain.WindowQuery,
) ([]models.Appointment, error) {

	db := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where("company_id = ?", q.CompanyID).
		Where("start_datetime BETWEEN ? AND ?", q.Start, q.End)

	if q.StaffID != nil {
		db = db.Where("staff_id = ?", *q.StaffID)
	}
	if q.Status != nil {
		db = db.Where("status = ?", string(*q.Status))
	}

	var list []models.Appointment
	if err := db.
		Order("start_datetime ASC").
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func findCompany(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
