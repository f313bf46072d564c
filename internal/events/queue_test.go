package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
)

type blockingPublisher struct {
	mu      sync.Mutex
	got     []string
	release chan struct{}
}

func (p *blockingPublisher) Publish(_ context.Context, e domain.AppointmentEvent) error {
	<-p.release
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, e.ID)
	return nil
}

func (p *blockingPublisher) ids() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.got...)
}

func TestQueuePublishDoesNotWaitForDelivery(t *testing.T) {
	slow := &blockingPublisher{release: make(chan struct{})}
	q := NewQueue(slow, 8, time.Second, zap.NewNop())
	go q.Run()

	start := time.Now()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.Publish(context.Background(), domain.AppointmentEvent{ID: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("publish waited on the slow publisher for %s", elapsed)
	}

	close(slow.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := q.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	got := slow.ids()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("expected a, b, c delivered in order, got %v", got)
	}
}

func TestQueueFullAndClosed(t *testing.T) {
	slow := &blockingPublisher{release: make(chan struct{})}
	q := NewQueue(slow, 1, 0, zap.NewNop())

	if err := q.Publish(context.Background(), domain.AppointmentEvent{ID: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.Publish(context.Background(), domain.AppointmentEvent{ID: "b"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	go q.Run()
	close(slow.release)
	if err := q.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Publish(context.Background(), domain.AppointmentEvent{ID: "c"}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}
