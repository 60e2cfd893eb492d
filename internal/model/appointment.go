package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CustomerInfo, StaffInfo and ServiceInfo are the denormalized reference
// fields returned alongside an appointment for display.
type CustomerInfo struct {
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

type StaffInfo struct {
	Name           string  `db:"name" json:"name"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

type ServiceInfo struct {
	Name     string  `db:"name" json:"name"`
	Duration int     `db:"duration" json:"duration"`
	Price    float64 `db:"price" json:"price"`
}

type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID uuid.UUID `db:"customer_id" json:"customer_id"`
	StaffID    uuid.UUID `db:"staff_id" json:"staff_id"`
	ServiceID  uuid.UUID `db:"service_id" json:"service_id"`

	AppointmentDate time.Time `db:"appointment_date" json:"appointment_date"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`

	Status AppointmentStatus `db:"status" json:"status"`
	Notes  string            `db:"notes" json:"notes,omitempty"`

	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentID     *string       `db:"payment_id" json:"payment_id,omitempty"`
	Amount        float64       `db:"amount" json:"amount"`
	PaidAt        *time.Time    `db:"paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Customer CustomerInfo `db:"customer" json:"customer"`
	Staff    StaffInfo    `db:"staff" json:"staff"`
	Service  ServiceInfo  `db:"service" json:"service"`
}

// EffectiveAmount is the snapshot amount, falling back to the service's
// current price when the snapshot is absent.
func (a *Appointment) EffectiveAmount() float64 {
	if a.Amount > 0 {
		return a.Amount
	}
	return a.Service.Price
}

type CreateAppointmentRequest struct {
	StaffID         uuid.UUID     `json:"staff_id" binding:"required"`
	ServiceID       uuid.UUID     `json:"service_id" binding:"required"`
	AppointmentDate string        `json:"appointment_date" binding:"required"`
	StartTime       string        `json:"start_time" binding:"required"`
	EndTime         string        `json:"end_time" binding:"required"`
	Notes           string        `json:"notes"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Amount          float64       `json:"amount"`
}

type UpdateAppointmentRequest struct {
	Status          *AppointmentStatus `json:"status"`
	AppointmentDate *string            `json:"appointment_date"`
	StartTime       *string            `json:"start_time"`
	EndTime         *string            `json:"end_time"`
	Notes           *string            `json:"notes"`
	PaymentStatus   *PaymentStatus     `json:"payment_status"`
	PaidAt          *time.Time         `json:"paid_at"`
}

type AppointmentFilters struct {
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
	Status     *AppointmentStatus
}
