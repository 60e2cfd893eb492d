package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
)

// selectAppointment expands the customer, staff and service references so a
// single query returns the display shape.
const selectAppointment = `
	SELECT a.id, a.customer_id, a.staff_id, a.service_id,
		   a.appointment_date, a.start_time, a.end_time,
		   a.status, a.notes,
		   a.payment_method, a.payment_status, a.payment_id, a.amount, a.paid_at,
		   a.created_at, a.updated_at,
		   c.name AS "customer.name", c.email AS "customer.email", c.phone AS "customer.phone",
		   st.name AS "staff.name", st.specialization AS "staff.specialization",
		   s.name AS "service.name", s.duration AS "service.duration", s.price AS "service.price"
	FROM appointments a
	JOIN users c ON c.id = a.customer_id
	JOIN users st ON st.id = a.staff_id
	JOIN services s ON s.id = a.service_id
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, customer_id, staff_id, service_id,
			appointment_date, start_time, end_time,
			status, notes, payment_method, payment_status, amount,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.CustomerID,
		apt.StaffID,
		apt.ServiceID,
		apt.AppointmentDate,
		apt.StartTime,
		apt.EndTime,
		apt.Status,
		apt.Notes,
		apt.PaymentMethod,
		apt.PaymentStatus,
		apt.Amount,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		// The partial unique slot index turns the conflict check into a
		// single atomic insert.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := selectAppointment + ` WHERE a.id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, appointment_date = $2, start_time = $3, end_time = $4,
			notes = $5, payment_method = $6, payment_status = $7,
			payment_id = $8, paid_at = $9, updated_at = $10
		WHERE id = $11
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.Status,
		apt.AppointmentDate,
		apt.StartTime,
		apt.EndTime,
		apt.Notes,
		apt.PaymentMethod,
		apt.PaymentStatus,
		apt.PaymentID,
		apt.PaidAt,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := selectAppointment + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.CustomerID != nil {
			query += fmt.Sprintf(" AND a.customer_id = $%d", argCount)
			args = append(args, *filters.CustomerID)
			argCount++
		}
		if filters.StaffID != nil {
			query += fmt.Sprintf(" AND a.staff_id = $%d", argCount)
			args = append(args, *filters.StaffID)
			argCount++
		}
		if filters.Status != nil {
			query += fmt.Sprintf(" AND a.status = $%d", argCount)
			args = append(args, *filters.Status)
			argCount++
		}
	}

	query += ` ORDER BY a.appointment_date ASC, a.start_time ASC`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	query := selectAppointment + `
		WHERE a.appointment_date >= $1 AND a.appointment_date <= $2
		ORDER BY a.appointment_date DESC, a.start_time DESC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to list appointments by date range: %w", err)
	}
	return appointments, nil
}
