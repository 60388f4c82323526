package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type UpdateAppointmentStatusInput struct {
	CompanyID     uuid.UUID
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	Status        string
}

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets the new status whatever the current one is. Setting the
// current status again is a no-op and is not audited.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateAppointmentStatusInput,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.CompanyID, in.AppointmentID)
	if err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}

	previous := ap.Status

	changed, err := domain.ChangeStatus(ap, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, notFoundAs(err, "appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    audit.ActionAppointmentStatusChanged,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]string{
			"from": previous,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
