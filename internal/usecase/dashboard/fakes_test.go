package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

var errDown = errors.New("relation does not exist")

// fakeRepo follows the func-field mock style; nil funcs return zero values.
type fakeRepo struct {
	company models.Company

	ListWindowFunc          func(start, end time.Time) ([]models.Appointment, error)
	ListUpcomingFunc        func(from, to time.Time, limit int) ([]models.Appointment, error)
	CountClientsFunc        func() (int64, error)
	CountActiveServicesFunc func() (int64, error)

	windowStart, windowEnd   time.Time
	upcomingFrom, upcomingTo time.Time
}

var _ metrics.Repository = (*fakeRepo)(nil)

func newFakeRepo(tz string) *fakeRepo {
	return &fakeRepo{company: models.Company{ID: uuid.New(), Timezone: tz}}
}

func (r *fakeRepo) GetCompany(_ context.Context, id uuid.UUID) (*models.Company, error) {
	if id != r.company.ID {
		return nil, errors.New("not found")
	}
	c := r.company
	return &c, nil
}

func (r *fakeRepo) ListWindow(_ context.Context, _ uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	r.windowStart, r.windowEnd = start, end
	if r.ListWindowFunc == nil {
		return nil, nil
	}
	return r.ListWindowFunc(start, end)
}

func (r *fakeRepo) ListUpcoming(_ context.Context, _ uuid.UUID, from, to time.Time, limit int) ([]models.Appointment, error) {
	r.upcomingFrom, r.upcomingTo = from, to
	if r.ListUpcomingFunc == nil {
		return nil, nil
	}
	return r.ListUpcomingFunc(from, to, limit)
}

func (r *fakeRepo) CountClients(context.Context, uuid.UUID) (int64, error) {
	if r.CountClientsFunc == nil {
		return 0, nil
	}
	return r.CountClientsFunc()
}

func (r *fakeRepo) CountActiveServices(context.Context, uuid.UUID) (int64, error) {
	if r.CountActiveServicesFunc == nil {
		return 0, nil
	}
	return r.CountActiveServicesFunc()
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	if s.failPut {
		return errors.New("bucket missing")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	s.types[key] = contentType
	return nil
}

func (s *memStore) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.example/" + key, nil
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

func newAudit() (*memAudit, *audit.Dispatcher) {
	w := &memAudit{}
	return w, audit.NewDispatcher(w, zerolog.Nop())
}
