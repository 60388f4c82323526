package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/dto"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

const maxListDays = 62

type ListAppointmentsInput struct {
	CompanyID uuid.UUID

	// YYYY-MM-DD in the company timezone. Empty From means today,
	// empty To means the same day as From.
	From string
	To   string

	StaffID *uuid.UUID
	Status  string
}

type ListAppointments struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListAppointments) WithClock(now func() time.Time) *ListAppointments {
	uc.now = now
	return uc
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	company, err := uc.repo.GetCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, notFoundAs(err, "company_not_found")
	}

	loc := timezone.Location(company.Timezone)

	from := strings.TrimSpace(in.From)
	if from == "" {
		from = uc.now().In(loc).Format("2006-01-02")
	}
	to := strings.TrimSpace(in.To)
	if to == "" {
		to = from
	}

	fromDay, err := timezone.ParseDate(from, company.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	toDay, err := timezone.ParseDate(to, company.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if toDay.Before(fromDay) || toDay.Sub(fromDay) > maxListDays*24*time.Hour {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	q := domain.WindowQuery{
		CompanyID: in.CompanyID,
		Start:     fromDay,
		End:       toDay.AddDate(0, 0, 1).Add(-time.Nanosecond),
		StaffID:   in.StaffID,
	}

	if strings.TrimSpace(in.Status) != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		q.Status = &status
	}

	appointments, err := uc.repo.ListAppointmentsInWindow(ctx, q)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
