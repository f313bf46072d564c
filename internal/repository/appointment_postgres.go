package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon/internal/calendar"
	"salon/internal/domain"
)

// bookingLockNamespace is the first key of the two-key advisory lock taken
// per booking date.
const bookingLockNamespace int32 = 0x53414c4e

const appointmentColumns = `id, client_name, client_phone, service, service_kind, appointment_date,
	start_time, end_time, price, status, created_at, updated_at`

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) WithinDate(ctx context.Context, date time.Time, fn func(ctx context.Context, scope DateScope) error) error {
	date = domain.Date(date)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storeError("begin booking transaction", err)
	}
	defer tx.Rollback(ctx)

	dayNumber := int32(date.Unix() / 86400)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, bookingLockNamespace, dayNumber); err != nil {
		return storeError("lock booking date", err)
	}

	if err := fn(ctx, &pgDateScope{tx: tx, date: date}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storeError("commit booking", err)
	}

	return nil
}

type pgDateScope struct {
	tx   pgx.Tx
	date time.Time
}

func (s *pgDateScope) ListByDate(ctx context.Context) ([]domain.Appointment, error) {
	return listByDate(ctx, s.tx, s.date)
}

func (s *pgDateScope) Insert(ctx context.Context, appt *domain.Appointment) error {
	query := `
		INSERT INTO appointments (client_name, client_phone, service, service_kind, appointment_date,
			start_time, end_time, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`

	err := s.tx.QueryRow(ctx, query,
		appt.ClientName,
		appt.ClientPhone,
		appt.Service,
		string(appt.ServiceKind),
		s.date,
		toPgTime(appt.StartTime),
		toPgTime(appt.EndTime),
		appt.Price,
		string(appt.Status),
		appt.CreatedAt,
	).Scan(&appt.ID)
	if err != nil {
		return storeError("insert appointment", err)
	}

	appt.Date = s.date
	appt.UpdatedAt = appt.CreatedAt
	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeError("get appointment", err)
	}

	return appt, nil
}

func (r *AppointmentRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	return listByDate(ctx, r.db, domain.Date(date))
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listByDate(ctx context.Context, q querier, date time.Time) ([]domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_date = $1 ORDER BY start_time, id`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, storeError("list appointments by date", err)
	}

	return collectAppointments(rows)
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	where, args := filterConditions(filter)

	query := `SELECT ` + appointmentColumns + ` FROM appointments` + where +
		` ORDER BY appointment_date DESC, start_time ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list appointments", err)
	}

	return collectAppointments(rows)
}

func (r *AppointmentRepo) SumPrice(ctx context.Context, filter domain.AppointmentFilter) (int64, error) {
	where, args := filterConditions(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0)::BIGINT FROM appointments`+where, args...).Scan(&total)
	if err != nil {
		return 0, storeError("sum appointment prices", err)
	}

	return total, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + appointmentColumns

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, string(to), at, id, string(from)))
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeError("update appointment status", err)
	}

	// Nothing matched: either the id is unknown or the status moved on.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("appointment %d is no longer %s: %w", id, from, domain.ErrInvalidTransition)
}

func filterConditions(filter domain.AppointmentFilter) (string, []any) {
	var conditions []string
	var args []any
	argCount := 1

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_date >= $%d", argCount))
		args = append(args, domain.Date(*filter.StartDate))
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_date <= $%d", argCount))
		args = append(args, domain.Date(*filter.EndDate))
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(*filter.Status))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func collectAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, storeError("scan appointment", err)
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate appointments", err)
	}

	return appointments, nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var kind, status string
	var start, end pgtype.Time

	if err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.Service,
		&kind,
		&appt.Date,
		&start,
		&end,
		&appt.Price,
		&status,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}

	appt.ServiceKind = domain.ServiceKind(kind)
	appt.Status = domain.AppointmentStatus(status)
	appt.StartTime = fromPgTime(start)
	appt.EndTime = fromPgTime(end)

	return &appt, nil
}

const microsPerMinute = int64(time.Minute / time.Microsecond)

func toPgTime(t calendar.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Minutes()) * microsPerMinute, Valid: true}
}

func fromPgTime(t pgtype.Time) calendar.TimeOfDay {
	return calendar.TimeOfDay(t.Microseconds / microsPerMinute)
}

// storeError classifies a driver error: missing rows become ErrNotFound and
// connectivity failures become ErrStoreUnavailable.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 is connection exception, 57P0x is operator intervention
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	return false
}
