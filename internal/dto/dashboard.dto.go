package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
)

type DashboardDTO struct {
	Range       string    `json:"range"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	TotalAppointments int             `json:"total_appointments"`
	TotalNoShows      int             `json:"total_no_shows"`
	TotalCompleted    int             `json:"total_completed"`
	LostRevenue       decimal.Decimal `json:"lost_revenue"`
	CompletionRate    float64         `json:"completion_rate"`
	AvailableSlots    int             `json:"available_slots"`

	TotalClients        int64 `json:"total_clients"`
	TotalActiveServices int64 `json:"total_active_services"`

	DailyTotals []metrics.DayTotal `json:"daily_totals"`

	UpcomingAppointments []AppointmentListDTO `json:"upcoming_appointments"`
	RecentNoShows        []AppointmentListDTO `json:"recent_no_shows"`

	Degraded []string `json:"degraded,omitempty"`
}

// FromDashboard rounds the completion rate to one decimal place.
func FromDashboard(m metrics.DashboardMetrics) DashboardDTO {
	return DashboardDTO{
		Range:       string(m.Range),
		WindowStart: m.WindowStart,
		WindowEnd:   m.WindowEnd,

		TotalAppointments: m.TotalAppointments,
		TotalNoShows:      m.TotalNoShows,
		TotalCompleted:    m.TotalCompleted,
		LostRevenue:       m.LostRevenue.Round(2),
		CompletionRate:    decimal.NewFromFloat(m.CompletionRate).Round(1).InexactFloat64(),
		AvailableSlots:    m.AvailableSlots,

		TotalClients:        m.TotalClients,
		TotalActiveServices: m.TotalActiveServices,

		DailyTotals: m.DailyTotals,

		UpcomingAppointments: FromAppointments(m.UpcomingAppointments),
		RecentNoShows:        FromAppointments(m.RecentNoShows),

		Degraded: m.Degraded,
	}
}
