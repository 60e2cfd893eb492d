package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// transitions is the allowed status transition table. Same-status updates are
// treated as no-ops, which keeps cancellation idempotent.
var transitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusPending:   {model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled},
	model.AppointmentStatusConfirmed: {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
	model.AppointmentStatusCompleted: {},
	model.AppointmentStatusCancelled: {},
}

func transitionAllowed(from, to model.AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Service struct {
	repo        repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
}

func NewService(repo repository.AppointmentRepository, serviceRepo repository.ServiceRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
	}
}

// CreateAppointment books a slot for the calling customer. The charged amount
// is snapshotted at creation time and does not track later price changes.
func (s *Service) CreateAppointment(ctx context.Context, caller model.Caller, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, apperrors.Validation("appointment_date must be YYYY-MM-DD")
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}

	staff, err := s.userRepo.Get(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("staff member", err)
		}
		return nil, fmt.Errorf("failed to resolve staff member: %w", err)
	}
	if staff.Role != model.RoleStaff || !staff.IsApproved {
		return nil, apperrors.Validation("staff member is not available for booking")
	}

	amount := req.Amount
	if amount == 0 {
		amount = svc.Price
	}

	method := req.PaymentMethod
	if method == "" {
		method = model.PaymentMethodCash
	}

	apt := &model.Appointment{
		CustomerID:      caller.ID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          model.AppointmentStatusPending,
		Notes:           req.Notes,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentStatusPending,
		Amount:          amount,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("this time slot is already booked", err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	log.Info().
		Str("appointment_id", apt.ID.String()).
		Str("customer_id", caller.ID.String()).
		Str("staff_id", req.StaffID.String()).
		Msg("appointment created")

	return s.repo.Get(ctx, apt.ID)
}

func (s *Service) GetAppointment(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if !s.canAccess(caller, apt) {
		return nil, apperrors.Forbidden("access denied")
	}
	return apt, nil
}

// ListAppointments is role-filtered: customers and staff see only their own,
// admins see everything.
func (s *Service) ListAppointments(ctx context.Context, caller model.Caller, status *model.AppointmentStatus) ([]*model.Appointment, error) {
	filters := &model.AppointmentFilters{Status: status}
	switch caller.Role {
	case model.RoleCustomer:
		filters.CustomerID = &caller.ID
	case model.RoleStaff:
		filters.StaffID = &caller.ID
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment applies only the fields present in the request. Status
// changes are validated against the transition table, and payment fields may
// only be mutated by staff or admin.
func (s *Service) UpdateAppointment(ctx context.Context, caller model.Caller, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if !s.canAccess(caller, apt) {
		return nil, apperrors.Forbidden("access denied")
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("invalid appointment status")
		}
		if !transitionAllowed(apt.Status, *req.Status) {
			return nil, apperrors.Validation(fmt.Sprintf("cannot transition appointment from %s to %s", apt.Status, *req.Status))
		}
		if caller.Role == model.RoleCustomer && *req.Status != model.AppointmentStatusCancelled && *req.Status != apt.Status {
			return nil, apperrors.Forbidden("customers may only cancel appointments")
		}
		apt.Status = *req.Status
	}

	if req.AppointmentDate != nil || req.StartTime != nil || req.EndTime != nil {
		if caller.Role == model.RoleCustomer {
			return nil, apperrors.Forbidden("customers may not reschedule appointments")
		}
		if req.AppointmentDate != nil {
			date, err := time.Parse(dateLayout, *req.AppointmentDate)
			if err != nil {
				return nil, apperrors.Validation("appointment_date must be YYYY-MM-DD")
			}
			apt.AppointmentDate = date
		}
		if req.StartTime != nil {
			apt.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			apt.EndTime = *req.EndTime
		}
	}

	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if req.PaymentStatus != nil || req.PaidAt != nil {
		if caller.Role == model.RoleCustomer {
			return nil, apperrors.Forbidden("customers may not modify payment fields")
		}
		if req.PaymentStatus != nil {
			apt.PaymentStatus = *req.PaymentStatus
		}
		if req.PaidAt != nil {
			apt.PaidAt = req.PaidAt
		}
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.Conflict("this time slot is already booked", err)
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// CancelAppointment soft-cancels; cancelling an already cancelled appointment
// succeeds as a no-op. The slot conflict index ignores cancelled rows, so the
// slot is immediately rebookable.
func (s *Service) CancelAppointment(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if !s.canAccess(caller, apt) {
		return nil, apperrors.Forbidden("access denied")
	}

	if apt.Status == model.AppointmentStatusCancelled {
		return apt, nil
	}

	apt.Status = model.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	log.Info().Str("appointment_id", id.String()).Msg("appointment cancelled")
	return apt, nil
}

func (s *Service) canAccess(caller model.Caller, apt *model.Appointment) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleStaff:
		return apt.StaffID == caller.ID
	default:
		return apt.CustomerID == caller.ID
	}
}
