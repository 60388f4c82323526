package routes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// memDB backs both the booking and the dashboard use cases.
type memDB struct {
	mu sync.Mutex

	company      models.Company
	services     map[uuid.UUID]models.Service
	clients      map[uuid.UUID]models.Client
	staff        map[uuid.UUID]models.User
	appointments []models.Appointment

	clientCountErr error
}

var (
	_ domain.Repository  = (*memDB)(nil)
	_ metrics.Repository = (*memDB)(nil)
)

func (m *memDB) GetCompany(_ context.Context, id uuid.UUID) (*models.Company, error) {
	if id != m.company.ID {
		return nil, domain.ErrNotFound
	}
	c := m.company
	return &c, nil
}

func (m *memDB) GetService(_ context.Context, companyID, id uuid.UUID) (*models.Service, error) {
	if s, ok := m.services[id]; ok && s.CompanyID == companyID {
		return &s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memDB) GetClient(_ context.Context, companyID, id uuid.UUID) (*models.Client, error) {
	if c, ok := m.clients[id]; ok && c.CompanyID == companyID {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memDB) GetStaff(_ context.Context, companyID, id uuid.UUID) (*models.User, error) {
	if u, ok := m.staff[id]; ok && u.CompanyID == companyID {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memDB) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment, check domain.ConflictCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []models.Appointment
	for _, ex := range m.appointments {
		if ex.StaffID == ap.StaffID && ex.Status != "canceled" &&
			ex.StartDatetime.Before(ap.EndDatetime) && ex.EndDatetime.After(ap.StartDatetime) {
			rows = append(rows, ex)
		}
	}
	if err := check(rows); err != nil {
		return err
	}

	ap.ID = uuid.New()
	m.appointments = append(m.appointments, m.join(*ap))
	return nil
}

func (m *memDB) join(ap models.Appointment) models.Appointment {
	ap.Client = m.clients[ap.ClientID]
	ap.Service = m.services[ap.ServiceID]
	ap.Staff = m.staff[ap.StaffID]
	return ap
}

func (m *memDB) GetAppointment(_ context.Context, companyID, id uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.appointments {
		if ap.ID == id && ap.CompanyID == companyID {
			return &ap, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDB) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == ap.ID {
			m.appointments[i].Status = ap.Status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memDB) ListAppointmentsInWindow(ctx context.Context, q domain.WindowQuery) ([]models.Appointment, error) {
	return m.ListWindow(ctx, q.CompanyID, q.Start, q.End)
}

func (m *memDB) ListWindow(_ context.Context, companyID uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.CompanyID == companyID && !ap.StartDatetime.Before(start) && !ap.StartDatetime.After(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (m *memDB) ListUpcoming(ctx context.Context, companyID uuid.UUID, from, to time.Time, _ int) ([]models.Appointment, error) {
	return m.ListWindow(ctx, companyID, from, to)
}

func (m *memDB) CountClients(context.Context, uuid.UUID) (int64, error) {
	if m.clientCountErr != nil {
		return 0, m.clientCountErr
	}
	return int64(len(m.clients)), nil
}

func (m *memDB) CountActiveServices(context.Context, uuid.UUID) (int64, error) {
	var n int64
	for _, s := range m.services {
		if s.Active {
			n++
		}
	}
	return n, nil
}

type memAuditLogs struct {
	rows []models.AuditLog
	last repository.AuditLogFilter
}

func (m *memAuditLogs) List(_ context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	m.last = f
	var out []models.AuditLog
	for _, r := range m.rows {
		if r.CompanyID == f.CompanyID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}
