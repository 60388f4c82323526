package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// ConflictRule selects how an existing booking collides with a proposed one.
type ConflictRule string

const (
	// RuleStartInRange flags a conflict only when an existing booking starts
	// inside [start, end) of the proposed one. A booking that started earlier
	// and is still running is not detected.
	RuleStartInRange ConflictRule = "start_in_range"

	// RuleOverlap flags any intersection of the half-open intervals.
	RuleOverlap ConflictRule = "overlap"
)

func ParseConflictRule(raw string) (ConflictRule, error) {
	switch ConflictRule(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RuleStartInRange:
		return RuleStartInRange, nil
	case RuleOverlap:
		return RuleOverlap, nil
	}
	return "", httperr.ErrBusiness("invalid_conflict_rule")
}

type Proposed struct {
	CompanyID uuid.UUID
	StaffID   uuid.UUID
	Start     time.Time
	End       time.Time
}

type Decision struct {
	Conflict      bool
	ConflictingID uuid.UUID
}

func (d Decision) Err() error {
	if d.Conflict {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

// Validate decides whether p can be booked given the staff member's existing
// appointments. Rows of another company or staff member, and canceled rows,
// never conflict. The first conflicting row decides.
func Validate(p Proposed, existing []models.Appointment, rule ConflictRule) Decision {
	for i := range existing {
		ex := &existing[i]

		if ex.CompanyID != p.CompanyID || ex.StaffID != p.StaffID {
			continue
		}
		if !Status(ex.Status).Blocking() {
			continue
		}

		if collides(p, ex, rule) {
			return Decision{Conflict: true, ConflictingID: ex.ID}
		}
	}
	return Decision{}
}

func collides(p Proposed, ex *models.Appointment, rule ConflictRule) bool {
	if rule == RuleOverlap {
		return ex.StartDatetime.Before(p.End) && ex.EndDatetime.After(p.Start)
	}
	return !ex.StartDatetime.Before(p.Start) && ex.StartDatetime.Before(p.End)
}
