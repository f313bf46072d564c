package domain

import (
	"time"
)

type EventType string

const (
	EventAppointmentBooked        EventType = "appointment.booked"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"
)

type AppointmentEvent struct {
	ID             string            `json:"id"`
	Type           EventType         `json:"type"`
	Appointment    Appointment       `json:"appointment"`
	PreviousStatus AppointmentStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time         `json:"occurred_at"`
}
