package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/payment"
)

// fakeRepo keeps rows in memory. The mutex plays the role of the row lock
// taken by the gorm implementation.
type fakeRepo struct {
	mu sync.Mutex

	company      models.Company
	services     map[uuid.UUID]models.Service
	clients      map[uuid.UUID]models.Client
	staff        map[uuid.UUID]models.User
	appointments []models.Appointment

	createErr error
	listErr   error
	lastQuery domain.WindowQuery
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		company: models.Company{
			ID:       uuid.New(),
			Name:     "Barbearia Centro",
			Status:   models.CompanyActive,
			Timezone: "America/Sao_Paulo",
		},
		services: map[uuid.UUID]models.Service{},
		clients:  map[uuid.UUID]models.Client{},
		staff:    map[uuid.UUID]models.User{},
	}
}

func (r *fakeRepo) addService(minutes int, price string) models.Service {
	s := models.Service{
		ID:              uuid.New(),
		CompanyID:       r.company.ID,
		Name:            "Corte",
		DurationMinutes: minutes,
		Price:           decimal.RequireFromString(price),
		Active:          true,
	}
	r.services[s.ID] = s
	return s
}

func (r *fakeRepo) addClient() models.Client {
	c := models.Client{ID: uuid.New(), CompanyID: r.company.ID, Name: "Ana", Email: "ana@example.com"}
	r.clients[c.ID] = c
	return c
}

func (r *fakeRepo) addStaff(active bool) models.User {
	u := models.User{ID: uuid.New(), CompanyID: r.company.ID, Name: "Bruno", Role: models.RoleStaff, Active: active}
	r.staff[u.ID] = u
	return u
}

func (r *fakeRepo) GetCompany(_ context.Context, id uuid.UUID) (*models.Company, error) {
	if id != r.company.ID {
		return nil, domain.ErrNotFound
	}
	c := r.company
	return &c, nil
}

func (r *fakeRepo) GetService(_ context.Context, companyID, id uuid.UUID) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetClient(_ context.Context, companyID, id uuid.UUID) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *fakeRepo) GetStaff(_ context.Context, companyID, id uuid.UUID) (*models.User, error) {
	u, ok := r.staff[id]
	if !ok || u.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment, check domain.ConflictCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	var candidates []models.Appointment
	for _, ex := range r.appointments {
		if ex.CompanyID == ap.CompanyID &&
			ex.StaffID == ap.StaffID &&
			ex.Status != string(domain.StatusCanceled) &&
			ex.StartDatetime.Before(ap.EndDatetime) &&
			ex.EndDatetime.After(ap.StartDatetime) {
			candidates = append(candidates, ex)
		}
	}

	if err := check(candidates); err != nil {
		return err
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, companyID, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == id && ap.CompanyID == companyID {
			ap.Service = r.services[ap.ServiceID]
			ap.Client = r.clients[ap.ClientID]
			return &ap, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i].Status = ap.Status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) ListAppointmentsInWindow(_ context.Context, q domain.WindowQuery) ([]models.Appointment, error) {
	r.lastQuery = q
	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CompanyID != q.CompanyID || ap.StartDatetime.Before(q.Start) || ap.StartDatetime.After(q.End) {
			continue
		}
		if q.StaffID != nil && ap.StaffID != *q.StaffID {
			continue
		}
		if q.Status != nil && ap.Status != string(*q.Status) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *fakeRepo) seed(staffID uuid.UUID, start time.Time, minutes int, status domain.Status) models.Appointment {
	ap := models.Appointment{
		ID:            uuid.New(),
		CompanyID:     r.company.ID,
		StaffID:       staffID,
		StartDatetime: start,
		EndDatetime:   start.Add(time.Duration(minutes) * time.Minute),
		Status:        string(status),
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(), error) {
	return nil, domain.ErrLockBusy
}

type fakeGateway struct {
	requests []payment.ChargeRequest
	err      error
}

func (g *fakeGateway) CreateCharge(_ context.Context, req payment.ChargeRequest) (*payment.Charge, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.requests = append(g.requests, req)
	return &payment.Charge{ID: "pref-1", Reference: req.Reference, CheckoutURL: "https://mp.example/checkout"}, nil
}

type memAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (m *memAudit) Write(_ context.Context, ev audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

// drain closes d and returns what reached the writer.
func (m *memAudit) drain(d *audit.Dispatcher) []audit.Event {
	_ = d.Close(context.Background())
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audit.Event(nil), m.events...)
}

func newAudit() (*memAudit, *audit.Dispatcher) {
	w := &memAudit{}
	return w, audit.NewDispatcher(w, zerolog.Nop())
}
