package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) WeeklyReport(ctx context.Context) (*model.Report, error) {
	end := time.Now()
	start := end.Add(-7 * 24 * time.Hour)
	return s.buildReport(ctx, model.ReportPeriodWeekly, start, end, false)
}

func (s *Service) MonthlyReport(ctx context.Context) (*model.Report, error) {
	end := time.Now()
	start := end.Add(-30 * 24 * time.Hour)
	return s.buildReport(ctx, model.ReportPeriodMonthly, start, end, true)
}

func (s *Service) CustomReport(ctx context.Context, startDate, endDate string) (*model.Report, error) {
	if startDate == "" || endDate == "" {
		return nil, apperrors.Validation("start date and end date are required")
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, apperrors.Validation("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, apperrors.Validation("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apperrors.Validation("end_date must not precede start_date")
	}

	return s.buildReport(ctx, model.ReportPeriodCustom, start, end, true)
}

// buildReport loads every appointment in range and aggregates in memory. The
// snapshot amount falls back to the service's current price when absent; the
// same rule applies to every period variant.
func (s *Service) buildReport(ctx context.Context, period model.ReportPeriod, start, end time.Time, withStaff bool) (*model.Report, error) {
	appointments, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for report: %w", err)
	}

	report := &model.Report{
		Period:           period,
		StartDate:        start,
		EndDate:          end,
		ServiceBreakdown: make(map[string]model.ServiceBreakdown),
		Appointments:     appointments,
	}
	if withStaff {
		report.StaffPerformance = make(map[string]model.StaffPerformance)
	}

	for _, apt := range appointments {
		report.Summary.TotalAppointments++

		switch apt.Status {
		case model.AppointmentStatusCompleted:
			report.Summary.CompletedAppointments++
		case model.AppointmentStatusCancelled:
			report.Summary.CancelledAppointments++
		}

		amount := apt.EffectiveAmount()

		switch apt.PaymentStatus {
		case model.PaymentStatusPaid:
			report.Summary.TotalRevenue += amount
			if apt.PaymentMethod == model.PaymentMethodOnline {
				report.Summary.OnlinePayments++
			} else {
				report.Summary.CashPayments++
			}
		case model.PaymentStatusPending:
			report.Summary.PendingPayments += amount
		}

		sb := report.ServiceBreakdown[apt.Service.Name]
		sb.Count++
		if apt.PaymentStatus == model.PaymentStatusPaid {
			sb.Revenue += amount
		}
		report.ServiceBreakdown[apt.Service.Name] = sb

		if withStaff {
			sp := report.StaffPerformance[apt.Staff.Name]
			sp.Appointments++
			if apt.Status == model.AppointmentStatusCompleted {
				sp.Completed++
			}
			if apt.PaymentStatus == model.PaymentStatusPaid {
				sp.Revenue += amount
			}
			report.StaffPerformance[apt.Staff.Name] = sp
		}
	}

	return report, nil
}
