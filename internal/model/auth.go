package model

import "github.com/google/uuid"

// Caller is the authenticated identity attached to each request.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// PaymentIntent is a mocked gateway intent held until confirmation.
type PaymentIntent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret"`
	ServiceID    string  `json:"service_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

type CreateIntentRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

type ConfirmPaymentRequest struct {
	AppointmentID string        `json:"appointment_id" binding:"required"`
	PaymentID     string        `json:"payment_id"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
}
