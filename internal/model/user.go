package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lib/pq"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone"`
	Role         Role      `db:"role" json:"role"`

	// Staff-only fields
	Specialization *string        `db:"specialization" json:"specialization,omitempty"`
	Availability   pq.StringArray `db:"availability" json:"availability"`
	IsApproved     bool           `db:"is_approved" json:"is_approved"`
	ApprovedBy     *uuid.UUID     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time     `db:"approved_at" json:"approved_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Specialization *string  `json:"specialization"`
	Availability   []string `json:"availability"`
}

type ApproveStaffRequest struct {
	Specialization string `json:"specialization" binding:"required"`
}

// StaffListing is the public shape of an approved staff member.
type StaffListing struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Availability   []string  `json:"availability"`
}
