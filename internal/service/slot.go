package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"salon/internal/calendar"
	"salon/internal/domain"
	"salon/internal/repository"
)

type SlotServiceImpl struct {
	repo   repository.AppointmentRepository
	rules  *calendar.Rules
	logger *zap.Logger
}

func NewSlotService(repo repository.AppointmentRepository, rules *calendar.Rules, logger *zap.Logger) *SlotServiceImpl {
	return &SlotServiceImpl{
		repo:   repo,
		rules:  rules,
		logger: logger,
	}
}

// AvailableSlots lists every start time on date at which ref could be booked
// right now, in ascending order.
func (s *SlotServiceImpl) AvailableSlots(ctx context.Context, date time.Time, ref calendar.ServiceRef) ([]calendar.TimeOfDay, error) {
	ctx, span := tracer.Start(ctx, "SlotService.AvailableSlots")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.date", date.Format(domain.DateLayout)),
		attribute.String("salon.service", ref.String()),
	)

	quote, err := s.rules.Resolve(ref)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("failed to load appointments for slots",
			zap.String("date", date.Format(domain.DateLayout)), zap.Error(err))
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return freeSlots(s.rules, quote.Duration, existing), nil
}

// freeSlots walks candidate starts from opening time to the latest start
// that still ends by closing time. A candidate survives when it stays inside
// business hours, clears every break, and neither it nor its own trailing
// buffer overlaps the occupied interval of a blocking appointment.
func freeSlots(rules *calendar.Rules, duration int, existing []domain.Appointment) []calendar.TimeOfDay {
	slots := make([]calendar.TimeOfDay, 0)

	latest := rules.LatestStart(duration)
	if latest.Before(rules.Open()) {
		return slots
	}

	occupied := make([]calendar.Interval, 0, len(existing))
	for i := range existing {
		if existing[i].Status.Blocks() {
			occupied = append(occupied, rules.Occupied(existing[i].Interval()))
		}
	}

	for c := rules.Open(); !c.After(latest); c = c.Add(rules.Step()) {
		candidate := calendar.Interval{Start: c, End: c.Add(duration)}
		if rules.IntersectsBreak(candidate) || !rules.IsWithinBusinessHours(candidate) {
			continue
		}
		// Both sides carry their trailing buffer, so a candidate that would end
		// right as another appointment starts is refused too.
		if overlapsAny(rules.Occupied(candidate), occupied) {
			continue
		}
		slots = append(slots, c)
	}

	return slots
}

func overlapsAny(iv calendar.Interval, others []calendar.Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

func containsSlot(slots []calendar.TimeOfDay, start calendar.TimeOfDay) bool {
	for _, s := range slots {
		if s == start {
			return true
		}
	}
	return false
}
