package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionDashboardExported        = "dashboard_exported"
	ActionNoShowChargeCreated      = "no_show_charge_created"
)

type Event struct {
	CompanyID uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Entity    string
	EntityID  *uuid.UUID
	Metadata  any
}

// Writer persists one event.
type Writer interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	writer Writer
	log    zerolog.Logger
	queue  chan Event

	// mu guards closed; senders hold it shared so Close never races a send.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(writer Writer, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100), // buffer seguro
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.writer.Write(ctx, ev); err != nil {
			d.log.Error().Err(err).
				Str("action", ev.Action).
				Str("company_id", ev.CompanyID.String()).
				Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks the request path.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
