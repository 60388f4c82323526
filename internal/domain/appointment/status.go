package appointment

import (
	"strings"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "no_show"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusCanceled,
	StatusNoShow,
}

func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Blocking reports whether an appointment in this status holds its slot.
func (s Status) Blocking() bool {
	return s != StatusCanceled
}

// Upcoming reports whether the appointment is still expected to happen.
func (s Status) Upcoming() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ParseStatus accepts the canonical names, case-insensitive.
// "cancelled" is accepted as an alias of "canceled".
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "cancelled" {
		s = StatusCanceled
	}
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_status")
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusScheduled
}
