package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
)

var ErrQueueFull = errors.New("event queue is full")

var ErrQueueClosed = errors.New("event queue is closed")

// Queue hands events to a slower publisher from a background goroutine, so
// Publish returns without waiting on brokers or mail servers.
type Queue struct {
	next    Publisher
	events  chan domain.AppointmentEvent
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewQueue(next Publisher, size int, timeout time.Duration, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{
		next:    next,
		events:  make(chan domain.AppointmentEvent, size),
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Publish enqueues the event and never blocks. The request context is not
// kept: delivery outlives the request.
func (q *Queue) Publish(_ context.Context, event domain.AppointmentEvent) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued events until Close is called, then drains what is
// left and returns.
func (q *Queue) Run() {
	defer close(q.done)

	for event := range q.events {
		q.deliver(event)
	}
}

func (q *Queue) deliver(event domain.AppointmentEvent) {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	if err := q.next.Publish(ctx, event); err != nil {
		q.logger.Warn("failed to deliver appointment event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("id", event.Appointment.ID),
			zap.Error(err))
	}
}

// Close stops accepting events and waits for Run to drain the queue or for
// ctx to expire.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
