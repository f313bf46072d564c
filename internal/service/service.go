package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"salon/config"
	"salon/internal/calendar"
	"salon/internal/domain"
	"salon/internal/events"
	"salon/internal/repository"
)

var tracer = otel.Tracer("salon/internal/service")

type Deps struct {
	Repos     *repository.Repositories
	Rules     *calendar.Rules
	Logger    *zap.Logger
	Config    *config.Config
	Publisher events.Publisher
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Services struct {
	Slot        SlotService
	Appointment AppointmentService
	Auth        AuthService
	Catalog     CatalogService
}

func NewServices(deps Deps) *Services {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}

	slots := NewSlotService(deps.Repos.Appointment, deps.Rules, deps.Logger)

	return &Services{
		Slot:        slots,
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Rules, deps.Publisher, deps.Clock, deps.Logger),
		Auth:        NewAuthService(deps.Config.Admin, deps.Config.JWT, deps.Clock, deps.Logger),
		Catalog:     NewCatalogService(deps.Rules),
	}
}

type SlotService interface {
	AvailableSlots(ctx context.Context, date time.Time, ref calendar.ServiceRef) ([]calendar.TimeOfDay, error)
}

type AppointmentService interface {
	Book(ctx context.Context, dto domain.BookAppointmentDTO) (*domain.Appointment, error)
	Transition(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPeriod(ctx context.Context, kind domain.PeriodKind, ref time.Time) ([]domain.Appointment, error)
	TotalCollected(ctx context.Context, kind domain.PeriodKind, ref time.Time) (int64, error)
	Dashboard(ctx context.Context, kind domain.PeriodKind, ref time.Time) (*domain.Dashboard, error)
}

type AuthService interface {
	Login(ctx context.Context, dto domain.LoginRequest) (*domain.Tokens, error)
	ParseToken(ctx context.Context, token string) (string, error)
}

type CatalogService interface {
	Catalog() Catalog
	Rules() *calendar.Rules
}
