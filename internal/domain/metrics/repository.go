package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Repository is the read side the dashboard needs.
type Repository interface {
	GetCompany(
		ctx context.Context,
		companyID uuid.UUID,
	) (*models.Company, error)

	// Appointments with start in [start, end], any status, joined with
	// client, service and staff.
	ListWindow(
		ctx context.Context,
		companyID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// Scheduled or confirmed appointments with start in [from, to],
	// ascending by start.
	ListUpcoming(
		ctx context.Context,
		companyID uuid.UUID,
		from time.Time,
		to time.Time,
		limit int,
	) ([]models.Appointment, error)

	CountClients(ctx context.Context, companyID uuid.UUID) (int64, error)
	CountActiveServices(ctx context.Context, companyID uuid.UUID) (int64, error)
}
