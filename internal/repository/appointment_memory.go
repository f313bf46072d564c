package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"salon/internal/domain"
)

// MemoryAppointmentRepo keeps appointments in process memory. Bookings on
// the same date are serialized by a per-date mutex; readers take the record
// lock shared and never observe a half-written record.
type MemoryAppointmentRepo struct {
	mu      sync.RWMutex
	records map[int64]domain.Appointment
	nextID  int64

	locksMu   sync.Mutex
	dateLocks map[string]*sync.Mutex
}

func NewMemoryAppointmentRepository() *MemoryAppointmentRepo {
	return &MemoryAppointmentRepo{
		records:   make(map[int64]domain.Appointment),
		dateLocks: make(map[string]*sync.Mutex),
	}
}

func (r *MemoryAppointmentRepo) dateLock(date time.Time) *sync.Mutex {
	key := date.Format(domain.DateLayout)

	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.dateLocks[key]
	if !ok {
		l = &sync.Mutex{}
		r.dateLocks[key] = l
	}
	return l
}

func (r *MemoryAppointmentRepo) WithinDate(ctx context.Context, date time.Time, fn func(ctx context.Context, scope DateScope) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("lock booking date: %w", err)
	}

	date = domain.Date(date)
	l := r.dateLock(date)
	l.Lock()
	defer l.Unlock()

	scope := &memDateScope{repo: r, date: date}
	if err := fn(ctx, scope); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appt := range scope.pending {
		r.nextID++
		appt.ID = r.nextID
		r.records[appt.ID] = *appt
	}

	return nil
}

type memDateScope struct {
	repo    *MemoryAppointmentRepo
	date    time.Time
	pending []*domain.Appointment
}

func (s *memDateScope) ListByDate(ctx context.Context) ([]domain.Appointment, error) {
	out, err := s.repo.ListByDate(ctx, s.date)
	if err != nil {
		return nil, err
	}
	for _, appt := range s.pending {
		out = append(out, *appt)
	}
	return out, nil
}

func (s *memDateScope) Insert(ctx context.Context, appt *domain.Appointment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	appt.Date = s.date
	appt.UpdatedAt = appt.CreatedAt
	s.pending = append(s.pending, appt)
	return nil
}

func (r *MemoryAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("get appointment %d: %w", id, domain.ErrNotFound)
	}
	return &appt, nil
}

func (r *MemoryAppointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	day := domain.Date(date)

	r.mu.RLock()
	out := make([]domain.Appointment, 0)
	for _, appt := range r.records {
		if appt.Date.Equal(day) {
			out = append(out, appt)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	out := r.filter(filter)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *MemoryAppointmentRepo) SumPrice(ctx context.Context, filter domain.AppointmentFilter) (int64, error) {
	var total int64
	for _, appt := range r.filter(filter) {
		total += appt.Price
	}
	return total, nil
}

func (r *MemoryAppointmentRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("update appointment %d: %w", id, domain.ErrNotFound)
	}
	if appt.Status != from {
		return nil, fmt.Errorf("appointment %d is no longer %s: %w", id, from, domain.ErrInvalidTransition)
	}

	appt.Status = to
	appt.UpdatedAt = at
	r.records[id] = appt
	return &appt, nil
}

func (r *MemoryAppointmentRepo) filter(filter domain.AppointmentFilter) []domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Appointment, 0)
	for _, appt := range r.records {
		if filter.StartDate != nil && appt.Date.Before(domain.Date(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(domain.Date(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		out = append(out, appt)
	}
	return out
}
