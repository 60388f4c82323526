package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appointmentDomain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

const (
	DefaultSlotsPerDay = 10

	upcomingHorizon = 24 * time.Hour
	upcomingLimit   = 5
	recentLimit     = 5
)

// Names reported in DashboardMetrics.Degraded.
const (
	FigureAppointments        = "appointments"
	FigureUpcoming            = "upcoming_appointments"
	FigureTotalClients        = "total_clients"
	FigureTotalActiveServices = "total_active_services"
)

// Count is a tenant-wide figure that may have failed to load.
type Count struct {
	N         int64
	Available bool
}

func Known(n int64) Count { return Count{N: n, Available: true} }

func Unavailable() Count { return Count{} }

// Rows is a query result that may have failed to load.
type Rows struct {
	Items     []models.Appointment
	Available bool
}

func RowsOf(items []models.Appointment) Rows { return Rows{Items: items, Available: true} }

func MissingRows() Rows { return Rows{} }

type Input struct {
	Window Window

	// Appointments starting inside Window, any status, in query order.
	Appointments Rows

	// Candidates for the upcoming list. Filtered again here.
	Upcoming Rows

	TotalClients        Count
	TotalActiveServices Count

	SlotsPerDay int
	Now         time.Time
}

// DayTotal counts the window's appointments starting on one local day.
type DayTotal struct {
	Day       string `json:"day"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	NoShows   int    `json:"no_shows"`
}

type DashboardMetrics struct {
	Range       Granularity `json:"range"`
	WindowStart time.Time   `json:"window_start"`
	WindowEnd   time.Time   `json:"window_end"`

	TotalAppointments int             `json:"total_appointments"`
	TotalNoShows      int             `json:"total_no_shows"`
	TotalCompleted    int             `json:"total_completed"`
	LostRevenue       decimal.Decimal `json:"lost_revenue"`
	CompletionRate    float64         `json:"completion_rate"`
	AvailableSlots    int             `json:"available_slots"`

	TotalClients        int64 `json:"total_clients"`
	TotalActiveServices int64 `json:"total_active_services"`

	DailyTotals []DayTotal `json:"daily_totals"`

	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	RecentNoShows        []models.Appointment `json:"recent_no_shows"`

	// Figures that could not be loaded and were reported as zero.
	Degraded []string `json:"degraded,omitempty"`
}

// Aggregate computes the dashboard snapshot. It never fails: a figure that
// is unavailable counts as zero and is listed in Degraded. The input slices
// are not modified.
func Aggregate(in Input) DashboardMetrics {
	out := DashboardMetrics{
		Range:                in.Window.Granularity,
		WindowStart:          in.Window.Start,
		WindowEnd:            in.Window.End,
		LostRevenue:          decimal.Zero,
		UpcomingAppointments: []models.Appointment{},
		RecentNoShows:        []models.Appointment{},
	}

	// -------- window figures --------
	if !in.Appointments.Available {
		out.Degraded = append(out.Degraded, FigureAppointments)
	}

	var noShows []models.Appointment
	for _, ap := range in.Appointments.Items {
		switch appointmentDomain.Status(ap.Status) {
		case appointmentDomain.StatusNoShow:
			noShows = append(noShows, ap)
			if ap.PriceSnapshot.Valid {
				out.LostRevenue = out.LostRevenue.Add(ap.PriceSnapshot.Decimal)
			}
		case appointmentDomain.StatusCompleted:
			out.TotalCompleted++
		}
	}

	out.TotalAppointments = len(in.Appointments.Items)
	out.TotalNoShows = len(noShows)

	if out.TotalAppointments > 0 {
		out.CompletionRate = float64(out.TotalCompleted) / float64(out.TotalAppointments) * 100
	}

	slots := in.SlotsPerDay
	if slots <= 0 {
		slots = DefaultSlotsPerDay
	}
	out.AvailableSlots = max(0, in.Window.Days()*slots-out.TotalAppointments)

	// last N no-shows, most recent first
	from := max(0, len(noShows)-recentLimit)
	for i := len(noShows) - 1; i >= from; i-- {
		out.RecentNoShows = append(out.RecentNoShows, noShows[i])
	}

	out.DailyTotals = dailyTotals(in.Window, in.Appointments.Items)

	// -------- tenant-wide counts --------
	if in.TotalClients.Available {
		out.TotalClients = in.TotalClients.N
	} else {
		out.Degraded = append(out.Degraded, FigureTotalClients)
	}

	if in.TotalActiveServices.Available {
		out.TotalActiveServices = in.TotalActiveServices.N
	} else {
		out.Degraded = append(out.Degraded, FigureTotalActiveServices)
	}

	// -------- upcoming --------
	if !in.Upcoming.Available {
		out.Degraded = append(out.Degraded, FigureUpcoming)
	}
	out.UpcomingAppointments = upcoming(in.Upcoming.Items, in.Now)

	return out
}

func upcoming(candidates []models.Appointment, now time.Time) []models.Appointment {
	until := now.Add(upcomingHorizon)

	out := []models.Appointment{}
	for _, ap := range candidates {
		if !appointmentDomain.Status(ap.Status).Upcoming() {
			continue
		}
		if ap.StartDatetime.Before(now) || ap.StartDatetime.After(until) {
			continue
		}
		out = append(out, ap)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDatetime.Before(out[j].StartDatetime)
	})

	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

func dailyTotals(w Window, rows []models.Appointment) []DayTotal {
	out := []DayTotal{}
	index := map[string]int{}

	for d := startOfDay(w.Start); !d.After(w.End); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		index[key] = len(out)
		out = append(out, DayTotal{Day: key})
	}

	loc := w.Start.Location()
	for _, ap := range rows {
		i, ok := index[ap.StartDatetime.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		out[i].Total++
		switch appointmentDomain.Status(ap.Status) {
		case appointmentDomain.StatusCompleted:
			out[i].Completed++
		case appointmentDomain.StatusNoShow:
			out[i].NoShows++
		}
	}
	return out
}
