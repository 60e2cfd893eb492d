package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/model"
)

// Sentinel errors mapped to the API error taxonomy by the service layer.
var (
	ErrNotFound  = errors.New("not found")
	ErrSlotTaken = errors.New("time slot already booked")
	ErrDuplicate = errors.New("already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.User, error)
	ListStaff(ctx context.Context, approved *bool) ([]*model.User, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*model.Service, error)
}

type AppointmentRepository interface {
	// Create inserts atomically; a live appointment already holding the
	// (staff, date, start time) slot surfaces as ErrSlotTaken.
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error)
}

type BusinessConfigRepository interface {
	Get(ctx context.Context) (*model.BusinessConfig, error)
	Upsert(ctx context.Context, cfg *model.BusinessConfig) error
}
