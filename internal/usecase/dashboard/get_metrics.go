package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appointmentDomain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

const upcomingLimit = 5

type GetDashboardInput struct {
	CompanyID uuid.UUID
	Range     string
}

type GetDashboard struct {
	repo        metrics.Repository
	slotsPerDay int
	metrics     *telemetry.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

func NewGetDashboard(
	repo metrics.Repository,
	slotsPerDay int,
	m *telemetry.Metrics,
	log zerolog.Logger,
) *GetDashboard {
	return &GetDashboard{
		repo:        repo,
		slotsPerDay: slotsPerDay,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

func (uc *GetDashboard) WithClock(now func() time.Time) *GetDashboard {
	uc.now = now
	return uc
}

// Execute loads every figure and aggregates them. A query that fails is
// logged and reported as zero; only the company lookup is fatal.
func (uc *GetDashboard) Execute(
	ctx context.Context,
	in GetDashboardInput,
) (metrics.DashboardMetrics, error) {

	granularity, err := metrics.ParseGranularity(in.Range)
	if err != nil {
		return metrics.DashboardMetrics{}, err
	}

	company, err := uc.repo.GetCompany(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, appointmentDomain.ErrNotFound) {
			return metrics.DashboardMetrics{}, httperr.ErrBusiness("company_not_found")
		}
		return metrics.DashboardMetrics{}, err
	}

	now := uc.now().In(timezone.Location(company.Timezone))
	window := metrics.WindowFor(granularity, now)

	log := uc.log.With().
		Str("company_id", in.CompanyID.String()).
		Str("range", string(granularity)).
		Logger()

	input := metrics.Input{
		Window:      window,
		SlotsPerDay: uc.slotsPerDay,
		Now:         now,
	}

	// ====== Window ======
	if rows, err := uc.repo.ListWindow(ctx, in.CompanyID, window.Start, window.End); err != nil {
		log.Error().Err(err).Msg("dashboard: window query failed")
		input.Appointments = metrics.MissingRows()
	} else {
		input.Appointments = metrics.RowsOf(rows)
	}

	// ====== Upcoming ======
	if rows, err := uc.repo.ListUpcoming(ctx, in.CompanyID, now, now.Add(24*time.Hour), upcomingLimit); err != nil {
		log.Error().Err(err).Msg("dashboard: upcoming query failed")
		input.Upcoming = metrics.MissingRows()
	} else {
		input.Upcoming = metrics.RowsOf(rows)
	}

	// ====== Counts ======
	if n, err := uc.repo.CountClients(ctx, in.CompanyID); err != nil {
		log.Error().Err(err).Msg("dashboard: client count failed")
		input.TotalClients = metrics.Unavailable()
	} else {
		input.TotalClients = metrics.Known(n)
	}

	if n, err := uc.repo.CountActiveServices(ctx, in.CompanyID); err != nil {
		log.Error().Err(err).Msg("dashboard: active service count failed")
		input.TotalActiveServices = metrics.Unavailable()
	} else {
		input.TotalActiveServices = metrics.Known(n)
	}

	out := metrics.Aggregate(input)

	if len(out.Degraded) > 0 {
		uc.metrics.ObserveDegraded(out.Degraded)
		log.Warn().Strs("degraded", out.Degraded).Msg("dashboard served with missing figures")
	}

	return out, nil
}
