package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"salon/internal/calendar"
	"salon/internal/domain"
	"salon/internal/events"
	"salon/internal/repository"
	"salon/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo      repository.AppointmentRepository
	rules     *calendar.Rules
	publisher events.Publisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, rules *calendar.Rules, publisher events.Publisher, now func() time.Time, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:      repo,
		rules:     rules,
		publisher: publisher,
		now:       now,
		logger:    logger,
	}
}

type bookingRequest struct {
	clientName  string
	clientPhone string
	ref         calendar.ServiceRef
	date        time.Time
	start       calendar.TimeOfDay
}

func parseBooking(dto domain.BookAppointmentDTO) (bookingRequest, error) {
	var req bookingRequest

	name, ok := validator.Required(dto.ClientName)
	if !ok {
		return req, domain.NewValidationError("client_name", "client name is required")
	}
	req.clientName = name

	phone, ok := validator.Required(dto.ClientPhone)
	if !ok {
		return req, domain.NewValidationError("client_phone", "client phone is required")
	}
	if !validator.ValidatePhone(phone) {
		return req, domain.NewValidationError("client_phone", "client phone must contain digits")
	}
	req.clientPhone = phone

	service, style := strings.TrimSpace(dto.Service), strings.TrimSpace(dto.Style)
	switch {
	case service == "" && style == "":
		return req, domain.NewValidationError("service", "a service or a style is required")
	case service != "" && style != "":
		return req, domain.NewValidationError("service", "choose either a service or a style, not both")
	case style != "":
		req.ref = calendar.SpecialStyle(style)
	default:
		req.ref = calendar.PlainService(service)
	}

	if strings.TrimSpace(dto.Date) == "" {
		return req, domain.NewValidationError("date", "date is required")
	}
	date, err := domain.ParseDate(strings.TrimSpace(dto.Date))
	if err != nil {
		return req, err
	}
	req.date = date

	if strings.TrimSpace(dto.StartTime) == "" {
		return req, domain.NewValidationError("start_time", "start time is required")
	}
	start, err := calendar.ParseTimeOfDay(strings.TrimSpace(dto.StartTime))
	if err != nil {
		return req, domain.NewValidationError("start_time", "start time must use the HH:MM format")
	}
	req.start = start

	return req, nil
}

// Book validates the request, then re-checks the slot and inserts the
// appointment as one unit per date, so two clients racing for the same
// slot cannot both win.
func (s *AppointmentServiceImpl) Book(ctx context.Context, dto domain.BookAppointmentDTO) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "AppointmentService.Book")
	defer span.End()

	req, err := parseBooking(dto)
	if err != nil {
		return nil, err
	}

	quote, err := s.rules.Resolve(req.ref)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("salon.date", req.date.Format(domain.DateLayout)),
		attribute.String("salon.start", req.start.String()),
		attribute.String("salon.service", quote.Service),
	)

	kind := domain.ServiceKindService
	if req.ref.Kind() == calendar.RefStyle {
		kind = domain.ServiceKindStyle
	}

	now := s.now()
	appt := &domain.Appointment{
		ClientName:  req.clientName,
		ClientPhone: req.clientPhone,
		Service:     quote.Service,
		ServiceKind: kind,
		Date:        req.date,
		StartTime:   req.start,
		EndTime:     req.start.Add(quote.Duration),
		Price:       quote.Price,
		Status:      domain.AppointmentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.WithinDate(ctx, req.date, func(ctx context.Context, scope repository.DateScope) error {
		existing, err := scope.ListByDate(ctx)
		if err != nil {
			return err
		}
		if !containsSlot(freeSlots(s.rules, quote.Duration, existing), req.start) {
			return fmt.Errorf("%s at %s: %w", req.date.Format(domain.DateLayout), req.start, domain.ErrSlotUnavailable)
		}
		return scope.Insert(ctx, appt)
	})
	if err != nil {
		s.logFailure(span, "booking failed", err,
			zap.String("date", req.date.Format(domain.DateLayout)),
			zap.String("start", req.start.String()),
			zap.String("service", quote.Service))
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.Int64("id", appt.ID),
		zap.String("date", appt.Date.Format(domain.DateLayout)),
		zap.String("start", appt.StartTime.String()),
		zap.String("service", appt.Service))

	s.publish(ctx, domain.EventAppointmentBooked, *appt, "")

	return appt, nil
}

func (s *AppointmentServiceImpl) Transition(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "AppointmentService.Transition")
	defer span.End()
	span.SetAttributes(attribute.Int64("salon.appointment_id", id), attribute.String("salon.target_status", string(status)))

	target, err := domain.ParseAppointmentStatus(string(status))
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logFailure(span, "transition lookup failed", err, zap.Int64("id", id))
		return nil, err
	}

	if !current.Status.CanTransition(target) {
		err := fmt.Errorf("%s -> %s: %w", current.Status, target, domain.ErrInvalidTransition)
		s.logFailure(span, "transition rejected", err, zap.Int64("id", id))
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, target, s.now())
	if err != nil {
		s.logFailure(span, "transition failed", err, zap.Int64("id", id))
		return nil, err
	}

	s.logger.Info("appointment status changed",
		zap.Int64("id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)))

	s.publish(ctx, domain.EventAppointmentStatusChanged, *updated, current.Status)

	return updated, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentServiceImpl) ListByPeriod(ctx context.Context, kind domain.PeriodKind, ref time.Time) ([]domain.Appointment, error) {
	period, err := domain.ResolvePeriod(kind, ref)
	if err != nil {
		return nil, err
	}

	appointments, err := s.repo.List(ctx, domain.AppointmentFilter{StartDate: &period.Start, EndDate: &period.End})
	if err != nil {
		s.logger.Error("failed to list appointments", zap.String("period", string(kind)), zap.Error(err))
		return nil, err
	}

	return appointments, nil
}

func (s *AppointmentServiceImpl) TotalCollected(ctx context.Context, kind domain.PeriodKind, ref time.Time) (int64, error) {
	period, err := domain.ResolvePeriod(kind, ref)
	if err != nil {
		return 0, err
	}

	paid := domain.AppointmentStatusPaid
	total, err := s.repo.SumPrice(ctx, domain.AppointmentFilter{StartDate: &period.Start, EndDate: &period.End, Status: &paid})
	if err != nil {
		s.logger.Error("failed to sum collected payments", zap.String("period", string(kind)), zap.Error(err))
		return 0, err
	}

	return total, nil
}

func (s *AppointmentServiceImpl) Dashboard(ctx context.Context, kind domain.PeriodKind, ref time.Time) (*domain.Dashboard, error) {
	period, err := domain.ResolvePeriod(kind, ref)
	if err != nil {
		return nil, err
	}

	appointments, err := s.ListByPeriod(ctx, kind, ref)
	if err != nil {
		return nil, err
	}

	total, err := s.TotalCollected(ctx, kind, ref)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Period:         period,
		Appointments:   appointments,
		TotalCollected: total,
	}, nil
}

func (s *AppointmentServiceImpl) publish(ctx context.Context, typ domain.EventType, appt domain.Appointment, previous domain.AppointmentStatus) {
	event := domain.AppointmentEvent{
		ID:             uuid.NewString(),
		Type:           typ,
		Appointment:    appt,
		PreviousStatus: previous,
		OccurredAt:     s.now(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish appointment event",
			zap.String("type", string(typ)),
			zap.Int64("id", appt.ID),
			zap.Error(err))
	}
}

// logFailure logs expected business outcomes at warn level and everything
// else as an error on both the log and the span.
func (s *AppointmentServiceImpl) logFailure(span trace.Span, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))

	switch domain.KindOf(err) {
	case domain.KindInternal, domain.KindStoreUnavailable:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(msg, fields...)
	default:
		s.logger.Warn(msg, fields...)
	}
}
