package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

var ErrNotFound = errors.New("appointment: record not found")

// WindowQuery lists a company's appointments whose start falls in [Start, End].
type WindowQuery struct {
	CompanyID uuid.UUID
	Start     time.Time
	End       time.Time
	StaffID   *uuid.UUID
	Status    *Status
}

// ConflictCheck receives the staff member's non-canceled appointments that
// intersect the proposed window and returns an error to abort the insert.
type ConflictCheck func(existing []models.Appointment) error

type Repository interface {
	// -------- Company --------
	GetCompany(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Company, error)

	// -------- Lookups (tenant scoped) --------
	GetService(
		ctx context.Context,
		companyID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	GetClient(
		ctx context.Context,
		companyID uuid.UUID,
		clientID uuid.UUID,
	) (*models.Client, error)

	GetStaff(
		ctx context.Context,
		companyID uuid.UUID,
		staffID uuid.UUID,
	) (*models.User, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
		check ConflictCheck,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		companyID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsInWindow(
		ctx context.Context,
		q WindowQuery,
	) ([]models.Appointment, error)
}
