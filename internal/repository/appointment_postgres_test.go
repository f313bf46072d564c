package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"salon/internal/calendar"
	"salon/internal/domain"
)

func TestFilterConditions(t *testing.T) {
	from := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	to := day(16)
	paid := domain.AppointmentStatusPaid

	tests := []struct {
		name      string
		filter    domain.AppointmentFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    domain.AppointmentFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "status only",
			filter:    domain.AppointmentFilter{Status: &paid},
			wantWhere: " WHERE status = $1",
			wantArgs:  []any{"paid"},
		},
		{
			name:      "date range truncates to days",
			filter:    domain.AppointmentFilter{StartDate: &from, EndDate: &to},
			wantWhere: " WHERE appointment_date >= $1 AND appointment_date <= $2",
			wantArgs:  []any{day(10), day(16)},
		},
		{
			name:      "end date and status",
			filter:    domain.AppointmentFilter{EndDate: &to, Status: &paid},
			wantWhere: " WHERE appointment_date <= $1 AND status = $2",
			wantArgs:  []any{day(16), "paid"},
		},
		{
			name:      "everything",
			filter:    domain.AppointmentFilter{StartDate: &from, EndDate: &to, Status: &paid},
			wantWhere: " WHERE appointment_date >= $1 AND appointment_date <= $2 AND status = $3",
			wantArgs:  []any{day(10), day(16), "paid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := filterConditions(tt.filter)
			if where != tt.wantWhere {
				t.Fatalf("expected where %q, got %q", tt.wantWhere, where)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}

func TestPgTimeRoundTrip(t *testing.T) {
	for _, tod := range []calendar.TimeOfDay{
		calendar.Clock(0, 0),
		calendar.Clock(9, 0),
		calendar.Clock(12, 55),
		calendar.Clock(18, 30),
		calendar.Clock(23, 59),
	} {
		pg := toPgTime(tod)
		if !pg.Valid {
			t.Fatalf("%s: expected a valid time", tod)
		}
		if want := int64(tod.Minutes()) * int64(time.Minute/time.Microsecond); pg.Microseconds != want {
			t.Fatalf("%s: expected %d microseconds, got %d", tod, want, pg.Microseconds)
		}
		if got := fromPgTime(pg); got != tod {
			t.Fatalf("round trip of %s gave %s", tod, got)
		}
	}
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"deadline", context.DeadlineExceeded, domain.ErrStoreUnavailable},
		{"connection exception", &pgconn.PgError{Code: "08006"}, domain.ErrStoreUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, domain.ErrStoreUnavailable},
		{"constraint", &pgconn.PgError{Code: "23514"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError("op", fmt.Errorf("wrapped: %w", tt.err))
			if tt.want == nil {
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStoreUnavailable) {
					t.Fatalf("expected an unclassified error, got %v", err)
				}
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected the driver error to stay wrapped, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
