package receipt

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"salon/internal/calendar"
	"salon/internal/domain"
	"salon/internal/storage"
)

func sampleAppointment(status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:          42,
		ClientName:  "Asha Rao",
		ClientPhone: "9876543210",
		Service:     calendar.HairCuttingTrimming,
		ServiceKind: domain.ServiceKindService,
		Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   calendar.Clock(10, 0),
		EndTime:     calendar.Clock(10, 30),
		Price:       1500,
		Status:      status,
		UpdatedAt:   time.Date(2025, 3, 14, 10, 35, 0, 0, time.UTC),
	}
}

func TestRenderPicksDocumentByStatus(t *testing.T) {
	tests := []struct {
		status   domain.AppointmentStatus
		kind     Kind
		contains []string
	}{
		{domain.AppointmentStatusPending, KindConfirmation, []string{"Appointment detail", "Status:  pending", "Price:   Rs. 1,500"}},
		{domain.AppointmentStatusApproved, KindConfirmation, []string{"Status:  approved"}},
		{domain.AppointmentStatusPaid, KindReceipt, []string{"Receipt #42", "Paid:    Rs. 1,500", "Paid at: 2025-03-14 10:35 UTC"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			doc := Render("Bright Look", sampleAppointment(tt.status))
			if doc.Kind != tt.kind {
				t.Fatalf("expected %s, got %s", tt.kind, doc.Kind)
			}
			body := string(doc.Body)
			for _, want := range append(tt.contains, "Name:    Asha Rao", "Time:    10:00 - 10:30", "Date:    2025-03-14") {
				if !strings.Contains(body, want) {
					t.Fatalf("document is missing %q:\n%s", want, body)
				}
			}
			if want := "asha_rao_42_" + string(tt.kind) + ".txt"; doc.Filename != want {
				t.Fatalf("expected filename %q, got %q", want, doc.Filename)
			}
		})
	}
}

func TestArchiverStoresOnlyPaidTransitions(t *testing.T) {
	fs := storage.NewMemoryStorage()
	archiver := NewArchiver(fs, "Bright Look", zap.NewNop())
	ctx := context.Background()

	events := []domain.AppointmentEvent{
		{Type: domain.EventAppointmentBooked, Appointment: sampleAppointment(domain.AppointmentStatusPending)},
		{Type: domain.EventAppointmentStatusChanged, Appointment: sampleAppointment(domain.AppointmentStatusApproved), PreviousStatus: domain.AppointmentStatusPending},
		{Type: domain.EventAppointmentStatusChanged, Appointment: sampleAppointment(domain.AppointmentStatusPaid), PreviousStatus: domain.AppointmentStatusApproved},
	}
	for _, e := range events {
		if err := archiver.Publish(ctx, e); err != nil {
			t.Fatalf("publish %s: %v", e.Type, err)
		}
	}

	keys := fs.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one archived receipt, got %v", keys)
	}
	if !strings.HasPrefix(keys[0], "receipts/2025-03-14/42-") {
		t.Fatalf("unexpected object name %q", keys[0])
	}

	data, err := fs.GetFile(ctx, keys[0])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(string(data), "Receipt #42") {
		t.Fatalf("archived object is not the receipt:\n%s", data)
	}

	link, err := archiver.Link(ctx, keys[0], time.Hour)
	if err != nil || link == "" {
		t.Fatalf("expected a download link, got %q (%v)", link, err)
	}
}
