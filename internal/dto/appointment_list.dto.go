package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uuid.UUID           `json:"id"`
	StartDatetime time.Time           `json:"start_datetime"`
	EndDatetime   time.Time           `json:"end_datetime"`
	Status        string              `json:"status"`
	ClientID      uuid.UUID           `json:"client_id"`
	ClientName    string              `json:"client_name"`
	ServiceID     uuid.UUID           `json:"service_id"`
	ServiceName   string              `json:"service_name"`
	StaffID       uuid.UUID           `json:"staff_id"`
	StaffName     string              `json:"staff_name"`
	PriceSnapshot decimal.NullDecimal `json:"price_snapshot"`
	Notes         string              `json:"notes,omitempty"`
}

// FromAppointment expects Client, Service and Staff to be preloaded;
// missing joins render as empty names.
func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		StartDatetime: ap.StartDatetime,
		EndDatetime:   ap.EndDatetime,
		Status:        ap.Status,
		ClientID:      ap.ClientID,
		ClientName:    ap.Client.Name,
		ServiceID:     ap.ServiceID,
		ServiceName:   ap.Service.Name,
		StaffID:       ap.StaffID,
		StaffName:     ap.Staff.Name,
		PriceSnapshot: ap.PriceSnapshot,
		Notes:         ap.Notes,
	}
}

func FromAppointments(list []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		out = append(out, FromAppointment(ap))
	}
	return out
}
