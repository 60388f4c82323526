package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID

	ClientID  uuid.UUID
	ServiceID uuid.UUID
	StaffID   uuid.UUID

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	locker  domain.Locker
	audit   *audit.Dispatcher
	metrics *telemetry.Metrics
	rule    domain.ConflictRule
	log     zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	locker domain.Locker,
	audit *audit.Dispatcher,
	metrics *telemetry.Metrics,
	rule domain.ConflictRule,
	log zerolog.Logger,
) *CreateAppointment {
	if locker == nil {
		locker = domain.NoopLocker{}
	}
	if rule == "" {
		rule = domain.RuleStartInRange
	}
	return &CreateAppointment{
		repo:    repo,
		locker:  locker,
		audit:   audit,
		metrics: metrics,
		rule:    rule,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Empresa (timezone)
	// --------------------------------------------------
	company, err := uc.repo.GetCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, notFoundAs(err, "company_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da empresa
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(
		strings.TrimSpace(in.Date),
		strings.TrimSpace(in.Time),
		company.Timezone,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço, cliente e profissional
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.CompanyID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}

	client, err := uc.repo.GetClient(ctx, in.CompanyID, in.ClientID)
	if err != nil {
		return nil, notFoundAs(err, "client_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.CompanyID, in.StaffID)
	if err != nil {
		return nil, notFoundAs(err, "staff_not_found")
	}
	if !staff.Active {
		return nil, httperr.ErrBusiness("staff_inactive")
	}

	ap, err := domain.NewAppointment(domain.NewAppointmentInput{
		CompanyID: in.CompanyID,
		ClientID:  in.ClientID,
		StaffID:   in.StaffID,
		Service:   service,
		Start:     start,
		Notes:     strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return nil, err
	}

	// joins da resposta (não são gravados)
	ap.Service = *service
	ap.Client = *client
	ap.Staff = *staff

	// --------------------------------------------------
	// 4️⃣ Lock por profissional
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, domain.StaffLockKey(in.CompanyID, in.StaffID))
	if err != nil {
		if errors.Is(err, domain.ErrLockBusy) {
			uc.metrics.ObserveBooking(telemetry.BookingBusy)
			return nil, httperr.ErrBusiness("booking_busy")
		}
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// 5️⃣ Conflito + criação (mesma transação)
	// --------------------------------------------------
	proposed := domain.Proposed{
		CompanyID: in.CompanyID,
		StaffID:   in.StaffID,
		Start:     ap.StartDatetime,
		End:       ap.EndDatetime,
	}

	var decision domain.Decision
	err = uc.repo.CreateAppointmentIfFree(ctx, ap, func(existing []models.Appointment) error {
		decision = domain.Validate(proposed, existing, uc.rule)
		return decision.Err()
	})

	if httperr.IsExclusionConflict(err) {
		err = httperr.ErrBusiness("time_conflict")
	}

	if httperr.IsBusiness(err, "time_conflict") {
		uc.metrics.ObserveBooking(telemetry.BookingConflict)
		uc.dispatchConflict(in, proposed, decision)
		return nil, err
	}
	if err != nil {
		uc.metrics.ObserveBooking(telemetry.BookingError)
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.metrics.ObserveBooking(telemetry.BookingAccepted)

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    audit.ActionAppointmentCreated,
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"staff_id":       in.StaffID,
			"start_datetime": ap.StartDatetime,
			"price_snapshot": ap.PriceSnapshot,
		},
	})

	uc.log.Info().
		Str("company_id", in.CompanyID.String()).
		Str("appointment_id", ap.ID.String()).
		Time("start", ap.StartDatetime).
		Msg("appointment created")

	return ap, nil
}

func (uc *CreateAppointment) dispatchConflict(
	in CreateAppointmentInput,
	p domain.Proposed,
	d domain.Decision,
) {
	meta := map[string]any{
		"staff_id": p.StaffID,
		"start":    p.Start,
		"end":      p.End,
		"rule":     uc.rule,
	}
	if d.ConflictingID != uuid.Nil {
		meta["conflicting_id"] = d.ConflictingID
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    audit.ActionAppointmentConflict,
		Entity:    "appointment",
		Metadata:  meta,
	})

	uc.log.Info().
		Str("company_id", in.CompanyID.String()).
		Str("staff_id", p.StaffID.String()).
		Time("start", p.Start).
		Msg("booking rejected: time conflict")
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
