package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"salon/internal/domain"
)

type recorder struct {
	got []domain.AppointmentEvent
	err error
}

func (r *recorder) Publish(_ context.Context, e domain.AppointmentEvent) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMultiPublishesToAll(t *testing.T) {
	boom := errors.New("broker down")
	a, b := &recorder{}, &recorder{err: boom}

	err := Multi{a, nil, b, Nop{}}.Publish(context.Background(), domain.AppointmentEvent{Type: domain.EventAppointmentBooked})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to include broker failure, got %v", err)
	}
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("expected each publisher to receive the event once, got %d and %d", len(a.got), len(b.got))
	}
}

func TestNewMessage(t *testing.T) {
	event := domain.AppointmentEvent{
		ID:          "evt-1",
		Type:        domain.EventAppointmentStatusChanged,
		Appointment: domain.Appointment{ID: 42, Status: domain.AppointmentStatusApproved},
		OccurredAt:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	msg, err := NewMessage(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(msg.Key) != "42" {
		t.Fatalf("expected key 42, got %q", msg.Key)
	}

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event_id"] != "evt-1" || headers["event_type"] != string(domain.EventAppointmentStatusChanged) {
		t.Fatalf("unexpected headers %v", headers)
	}

	var decoded domain.AppointmentEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if decoded.Appointment.Status != domain.AppointmentStatusApproved {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
	if SplitBrokers("") != nil {
		t.Fatalf("expected no brokers for empty input")
	}
}
