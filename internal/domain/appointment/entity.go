package appointment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

type NewAppointmentInput struct {
	CompanyID uuid.UUID
	ClientID  uuid.UUID
	StaffID   uuid.UUID
	Service   *models.Service
	Start     time.Time
	Notes     string
}

// NewAppointment builds a scheduled appointment. The end time and the price
// snapshot are taken from the service now and never recomputed afterwards.
func NewAppointment(in NewAppointmentInput) (*models.Appointment, error) {
	if in.Service == nil || in.Service.CompanyID != in.CompanyID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if in.Service.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	return &models.Appointment{
		CompanyID:     in.CompanyID,
		ClientID:      in.ClientID,
		StaffID:       in.StaffID,
		ServiceID:     in.Service.ID,
		StartDatetime: in.Start,
		EndDatetime:   in.Start.Add(time.Duration(in.Service.DurationMinutes) * time.Minute),
		Status:        string(InitialStatus()),
		PriceSnapshot: decimal.NewNullDecimal(in.Service.Price),
		Notes:         in.Notes,
	}, nil
}

// ChangeStatus sets any status from any other status; no transition graph
// is enforced. It reports whether the value actually changed.
func ChangeStatus(ap *models.Appointment, to Status) (bool, error) {
	if !to.Valid() {
		return false, httperr.ErrBusiness("invalid_status")
	}
	if Status(ap.Status) == to {
		return false, nil
	}
	ap.Status = string(to)
	return true, nil
}
