package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"salon/internal/calendar"
	"salon/internal/domain"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (s *fakeSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	return s.err
}

func event(typ domain.EventType, status domain.AppointmentStatus) domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Type: typ,
		Appointment: domain.Appointment{
			ID:         7,
			ClientName: "Asha Rao",
			Service:    calendar.Trimming,
			Date:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime:  calendar.Clock(9, 0),
			EndTime:    calendar.Clock(9, 10),
			Price:      50,
			Status:     status,
		},
	}
}

func TestMailNotifierSendsBookingsAndPayments(t *testing.T) {
	sender := &fakeSender{}
	n := NewMailNotifierWithSender(sender, "salon@example.com", "owner@example.com", "Bright Look", zap.NewNop())
	ctx := context.Background()

	for _, e := range []domain.AppointmentEvent{
		event(domain.EventAppointmentBooked, domain.AppointmentStatusPending),
		event(domain.EventAppointmentStatusChanged, domain.AppointmentStatusApproved),
		event(domain.EventAppointmentStatusChanged, domain.AppointmentStatusRejected),
		event(domain.EventAppointmentStatusChanged, domain.AppointmentStatusPaid),
	} {
		if err := n.Publish(ctx, e); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(sender.sent))
	}

	tests := []struct {
		subject string
		body    string
	}{
		{"New booking: Asha Rao on 2025-03-14 at 09:00", "Appointment detail"},
		{"Payment received: Asha Rao, Rs. 50", "Receipt #7"},
	}
	for i, tt := range tests {
		m := sender.sent[i]
		if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != tt.subject {
			t.Fatalf("mail %d: expected subject %q, got %v", i, tt.subject, got)
		}
		if got := m.GetHeader("To"); len(got) != 1 || got[0] != "owner@example.com" {
			t.Fatalf("mail %d: unexpected recipient %v", i, got)
		}
		var buf bytes.Buffer
		if _, err := m.WriteTo(&buf); err != nil {
			t.Fatalf("mail %d: write: %v", i, err)
		}
		if !strings.Contains(buf.String(), tt.body) {
			t.Fatalf("mail %d: body is missing %q", i, tt.body)
		}
	}
}

func TestMailNotifierWrapsSendErrors(t *testing.T) {
	sendErr := errors.New("connection refused")
	n := NewMailNotifierWithSender(&fakeSender{err: sendErr}, "a@example.com", "b@example.com", "Bright Look", zap.NewNop())

	err := n.Publish(context.Background(), event(domain.EventAppointmentBooked, domain.AppointmentStatusPending))
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}
