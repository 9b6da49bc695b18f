// Package testutil holds in-memory fakes shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

var ErrStoreDown = errors.New("store down")

// MemRepo is an in-memory domain.Repository.
type MemRepo struct {
	mu         sync.Mutex
	nextID     uint
	Apps       map[uint]models.Appointment
	Patients   map[string]models.Patient
	TakenCodes map[string]bool

	FailUpdate bool
}

func NewMemRepo() *MemRepo {
	return &MemRepo{
		Apps:       map[uint]models.Appointment{},
		Patients:   map[string]models.Patient{},
		TakenCodes: map[string]bool{},
	}
}

func (m *MemRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ap.ID = m.nextID
	m.Apps[ap.ID] = *ap
	return nil
}

func (m *MemRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.Apps[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (m *MemRepo) FindByBookingCodeAndEmail(_ context.Context, code, email string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.Apps {
		if ap.BookingCode != nil && *ap.BookingCode == code && ap.Email == email {
			return &ap, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (m *MemRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.Apps {
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.Branch != "" && ap.Branch != f.Branch {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MemRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUpdate {
		return ErrStoreDown
	}
	m.Apps[ap.ID] = *ap
	return nil
}

func (m *MemRepo) BookingCodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TakenCodes[code] {
		return true, nil
	}
	for _, ap := range m.Apps {
		if ap.BookingCode != nil && *ap.BookingCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemRepo) ListBookedTimes(_ context.Context, branch, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, ap := range m.Apps {
		if ap.Branch == branch && ap.Date == date && ap.Status == string(domain.StatusAccepted) && !seen[ap.Time] {
			seen[ap.Time] = true
			out = append(out, ap.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemRepo) HasAcceptedInSlot(_ context.Context, branch, date, slot string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.Apps {
		if ap.ID != excludeID && ap.Branch == branch && ap.Date == date && ap.Time == slot &&
			ap.Status == string(domain.StatusAccepted) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int64{}
	for _, ap := range m.Apps {
		out[ap.Status]++
	}
	return out, nil
}

func (m *MemRepo) CountUpcoming(_ context.Context, today string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, ap := range m.Apps {
		if ap.Date > today && ap.Status != string(domain.StatusCancelled) {
			n++
		}
	}
	return n, nil
}

func (m *MemRepo) GetOrCreatePatient(_ context.Context, name, email, phone string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Patients[email]; ok {
		return &p, nil
	}
	p := models.Patient{ID: uint(len(m.Patients) + 1), Name: name, Email: email, Phone: phone}
	m.Patients[email] = p
	return &p, nil
}

var _ domain.Repository = (*MemRepo)(nil)

// StubSender records sent messages and optionally fails.
type StubSender struct {
	mu   sync.Mutex
	Sent []notify.Message
	Err  error
}

func (s *StubSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// CountingLocker runs fn directly and counts calls.
type CountingLocker struct{ Calls int }

func (l *CountingLocker) WithSlotLock(ctx context.Context, _, _, _ string, fn func(ctx context.Context) error) error {
	l.Calls++
	return fn(ctx)
}

var (
	_ domain.SlotLocker = (*CountingLocker)(nil)
	_ notify.Sender     = (*StubSender)(nil)
)

// MemUsers is an in-memory staff store keyed by username.
type MemUsers map[string]*models.User

func (m MemUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := m[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

// MemLimiter allows Max attempts per key until Reset.
type MemLimiter struct {
	mu       sync.Mutex
	Max      int
	Attempts map[string]int
}

func NewMemLimiter(max int) *MemLimiter {
	return &MemLimiter{Max: max, Attempts: map[string]int{}}
}

func (l *MemLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Attempts[key]++
	return l.Attempts[key] <= l.Max, nil
}

func (l *MemLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.Attempts, key)
	return nil
}
