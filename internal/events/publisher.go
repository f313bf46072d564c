package events

import (
	"context"
	"errors"

	"salon/internal/domain"
)

// Publisher delivers appointment events to an outside consumer. Delivery is
// best effort; callers log failures and move on.
type Publisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
}

type Nop struct{}

func (Nop) Publish(context.Context, domain.AppointmentEvent) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
