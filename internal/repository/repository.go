package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salon/internal/domain"
)

type Repositories struct {
	Appointment AppointmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Appointment: NewAppointmentRepository(db),
	}
}

// NewMemoryRepositories backs every repository with process memory. Data is
// lost on restart.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Appointment: NewMemoryAppointmentRepository(),
	}
}

type AppointmentRepository interface {
	// WithinDate runs fn with exclusive booking rights for date. No other
	// WithinDate call for the same date runs until fn returns; an error from
	// fn discards everything it inserted.
	WithinDate(ctx context.Context, date time.Time, fn func(ctx context.Context, scope DateScope) error) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	// List returns appointments ordered by date descending, then start time.
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	SumPrice(ctx context.Context, filter domain.AppointmentFilter) (int64, error)
	// UpdateStatus moves id from one status to another only if it is still
	// in from. It returns ErrInvalidTransition when the status has moved on.
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error)
}

type DateScope interface {
	ListByDate(ctx context.Context) ([]domain.Appointment, error)
	Insert(ctx context.Context, appt *domain.Appointment) error
}
