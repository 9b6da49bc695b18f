package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ActionAppointmentCreated    = "appointment_created"
	ActionAppointmentAccepted   = "appointment_accepted"
	ActionAppointmentCancelled  = "appointment_cancelled"
	ActionAppointmentReopened   = "appointment_reopened"
	ActionPatientCancelled      = "appointment_cancelled_by_patient"
	ActionNotificationFailed    = "notification_failed"
	ActionStaffLogin            = "staff_login"
	ActionStaffLoginRateLimited = "staff_login_rate_limited"

	ActorPatient = "patient"
	ActorSystem  = "system"
)

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events off the request path. Events are dropped
// when the queue is full; auditing never fails a request.
type Dispatcher struct {
	recorder Recorder
	log      zerolog.Logger
	queue    chan Event
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(recorder Recorder, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		log:      log,
		queue:    make(chan Event, 100),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.recorder.Record(ctx, ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch is safe on a nil Dispatcher. Events sent after Close are dropped.
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
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
