package domain

import (
	"time"

	"salon/internal/calendar"
)

type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
	AppointmentStatusPaid     AppointmentStatus = "paid"
)

var transitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:  {AppointmentStatusApproved, AppointmentStatusRejected},
	AppointmentStatusApproved: {AppointmentStatusPaid},
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected, AppointmentStatusPaid:
		return st, nil
	default:
		return "", NewValidationError("status", "unknown appointment status "+s)
	}
}

// CanTransition reports whether an appointment may move from s to next.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blocks reports whether an appointment in this status holds its slot.
func (s AppointmentStatus) Blocks() bool {
	return s != AppointmentStatusRejected
}

type ServiceKind string

const (
	ServiceKindService ServiceKind = "service"
	ServiceKindStyle   ServiceKind = "style"
)

type Appointment struct {
	ID          int64              `json:"id"`
	ClientName  string             `json:"client_name"`
	ClientPhone string             `json:"client_phone"`
	Service     string             `json:"service"`
	ServiceKind ServiceKind        `json:"service_kind"`
	Date        time.Time          `json:"date"`
	StartTime   calendar.TimeOfDay `json:"start_time"`
	EndTime     calendar.TimeOfDay `json:"end_time"`
	Price       int64              `json:"price"`
	Status      AppointmentStatus  `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (a *Appointment) Interval() calendar.Interval {
	return calendar.Interval{Start: a.StartTime, End: a.EndTime}
}

// Ref reconstructs the service reference the appointment was booked with.
func (a *Appointment) Ref() calendar.ServiceRef {
	if a.ServiceKind == ServiceKindStyle {
		return calendar.SpecialStyle(a.Service)
	}
	return calendar.PlainService(a.Service)
}

// BookAppointmentDTO is what a client submits. Exactly one of Service and
// Style must be set.
type BookAppointmentDTO struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Service     string `json:"service,omitempty"`
	Style       string `json:"style,omitempty"`
	Date        string `json:"date" binding:"required" example:"2025-03-14"`
	StartTime   string `json:"start_time" binding:"required" example:"10:30"`
}

type UpdateStatusDTO struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending approved rejected paid"`
}

type AppointmentFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *AppointmentStatus
}

type Dashboard struct {
	Period         Period        `json:"period"`
	Appointments   []Appointment `json:"appointments"`
	TotalCollected int64         `json:"total_collected"`
}
