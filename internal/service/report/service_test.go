package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdesk/booking-api/internal/model"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type stubAppointmentRepo struct {
	appointments []*model.Appointment
}

func (r *stubAppointmentRepo) Create(context.Context, *model.Appointment) error { return nil }
func (r *stubAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (r *stubAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }
func (r *stubAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return r.appointments, nil
}

func (r *stubAppointmentRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.AppointmentDate.Before(start) || apt.AppointmentDate.After(end) {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
}

func paidAppointment(date time.Time, staff, service string, amount, servicePrice float64) *model.Appointment {
	return &model.Appointment{
		ID:              uuid.New(),
		AppointmentDate: date,
		Status:          model.AppointmentStatusCompleted,
		PaymentMethod:   model.PaymentMethodCash,
		PaymentStatus:   model.PaymentStatusPaid,
		Amount:          amount,
		Staff:           model.StaffInfo{Name: staff},
		Service:         model.ServiceInfo{Name: service, Price: servicePrice},
	}
}

func TestRevenueFallbackIsConsistent(t *testing.T) {
	date := time.Now().Add(-2 * 24 * time.Hour)

	// One appointment with a snapshot amount, two legacy rows without. The
	// missing snapshots fall back to the current service price in every
	// report variant.
	repo := &stubAppointmentRepo{appointments: []*model.Appointment{
		paidAppointment(date, "Dana", "Haircut", 50, 45),
		paidAppointment(date, "Dana", "Coloring", 0, 80),
		paidAppointment(date, "Morgan", "Styling", 0, 60),
	}}
	svc := NewService(repo)

	weekly, err := svc.WeeklyReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 190.0, weekly.Summary.TotalRevenue)

	monthly, err := svc.MonthlyReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 190.0, monthly.Summary.TotalRevenue)

	custom, err := svc.CustomReport(context.Background(),
		date.Add(-24*time.Hour).Format("2006-01-02"),
		time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 190.0, custom.Summary.TotalRevenue)
}

func TestReportSummaryCounts(t *testing.T) {
	date := time.Now().Add(-24 * time.Hour)

	pendingPayment := paidAppointment(date, "Dana", "Haircut", 40, 45)
	pendingPayment.Status = model.AppointmentStatusConfirmed
	pendingPayment.PaymentStatus = model.PaymentStatusPending

	cancelled := paidAppointment(date, "Dana", "Haircut", 45, 45)
	cancelled.Status = model.AppointmentStatusCancelled
	cancelled.PaymentStatus = model.PaymentStatusPending

	online := paidAppointment(date, "Morgan", "Facial", 70, 70)
	online.PaymentMethod = model.PaymentMethodOnline

	repo := &stubAppointmentRepo{appointments: []*model.Appointment{
		paidAppointment(date, "Dana", "Haircut", 45, 45),
		pendingPayment,
		cancelled,
		online,
	}}
	svc := NewService(repo)

	rep, err := svc.WeeklyReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, rep.Summary.TotalAppointments)
	assert.Equal(t, 2, rep.Summary.CompletedAppointments)
	assert.Equal(t, 1, rep.Summary.CancelledAppointments)
	assert.Equal(t, 115.0, rep.Summary.TotalRevenue)
	assert.Equal(t, 85.0, rep.Summary.PendingPayments)
	assert.Equal(t, 1, rep.Summary.CashPayments)
	assert.Equal(t, 1, rep.Summary.OnlinePayments)

	haircuts := rep.ServiceBreakdown["Haircut"]
	assert.Equal(t, 3, haircuts.Count)
	assert.Equal(t, 45.0, haircuts.Revenue)
}

func TestStaffPerformanceOnlyInMonthlyAndCustom(t *testing.T) {
	date := time.Now().Add(-24 * time.Hour)
	repo := &stubAppointmentRepo{appointments: []*model.Appointment{
		paidAppointment(date, "Dana", "Haircut", 45, 45),
	}}
	svc := NewService(repo)

	weekly, err := svc.WeeklyReport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, weekly.StaffPerformance)

	monthly, err := svc.MonthlyReport(context.Background())
	require.NoError(t, err)
	require.Contains(t, monthly.StaffPerformance, "Dana")
	assert.Equal(t, 1, monthly.StaffPerformance["Dana"].Appointments)
	assert.Equal(t, 1, monthly.StaffPerformance["Dana"].Completed)
	assert.Equal(t, 45.0, monthly.StaffPerformance["Dana"].Revenue)
}

func TestCustomReportValidation(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{})

	_, err := svc.CustomReport(context.Background(), "", "2026-08-01")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	_, err = svc.CustomReport(context.Background(), "2026-08-10", "2026-08-01")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	_, err = svc.CustomReport(context.Background(), "not-a-date", "2026-08-01")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}
