package model

import "time"

type ReportPeriod string

const (
	ReportPeriodWeekly  ReportPeriod = "Weekly"
	ReportPeriodMonthly ReportPeriod = "Monthly"
	ReportPeriodCustom  ReportPeriod = "Custom"
)

type ReportSummary struct {
	TotalAppointments     int     `json:"total_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	CancelledAppointments int     `json:"cancelled_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
	PendingPayments       float64 `json:"pending_payments"`
	CashPayments          int     `json:"cash_payments"`
	OnlinePayments        int     `json:"online_payments"`
}

type ServiceBreakdown struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type StaffPerformance struct {
	Appointments int     `json:"appointments"`
	Completed    int     `json:"completed"`
	Revenue      float64 `json:"revenue"`
}

type Report struct {
	Period           ReportPeriod                `json:"period"`
	StartDate        time.Time                   `json:"start_date"`
	EndDate          time.Time                   `json:"end_date"`
	Summary          ReportSummary               `json:"summary"`
	ServiceBreakdown map[string]ServiceBreakdown `json:"service_breakdown"`
	StaffPerformance map[string]StaffPerformance `json:"staff_performance,omitempty"`
	Appointments     []*Appointment              `json:"appointments"`
}
