package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/email"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type Service struct {
	repo     repository.UserRepository
	emailSvc email.Sender
}

func NewService(repo repository.UserRepository, emailSvc email.Sender) *Service {
	return &Service{repo: repo, emailSvc: emailSvc}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser mutates profile fields. Callers may update themselves; admins may
// update anyone. Staff-scoped fields are ignored for plain customers.
func (s *Service) UpdateUser(ctx context.Context, caller model.Caller, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if caller.ID != id && caller.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("access denied")
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if user.Role == model.RoleStaff || caller.Role == model.RoleAdmin {
		if req.Specialization != nil {
			user.Specialization = req.Specialization
		}
		if req.Availability != nil {
			user.Availability = req.Availability
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListApprovedStaff backs the public staff listing used by the booking flow.
// Unapproved staff never appear here.
func (s *Service) ListApprovedStaff(ctx context.Context) ([]*model.StaffListing, error) {
	approved := true
	staff, err := s.repo.ListStaff(ctx, &approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	listings := make([]*model.StaffListing, 0, len(staff))
	for _, u := range staff {
		listings = append(listings, &model.StaffListing{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Specialization: u.Specialization,
			Availability:   u.Availability,
		})
	}
	return listings, nil
}

func (s *Service) ListPendingStaff(ctx context.Context) ([]*model.User, error) {
	pending := false
	staff, err := s.repo.ListStaff(ctx, &pending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending staff: %w", err)
	}
	return staff, nil
}

func (s *Service) ListAllStaff(ctx context.Context) ([]*model.User, error) {
	staff, err := s.repo.ListStaff(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// ApproveStaff makes a staff account bookable. A non-empty specialization is
// required; the approving admin and timestamp are recorded.
func (s *Service) ApproveStaff(ctx context.Context, adminID, staffID uuid.UUID, specialization string) (*model.User, error) {
	if specialization == "" {
		return nil, apperrors.Validation("specialization is required for approval")
	}

	user, err := s.GetUser(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleStaff {
		return nil, apperrors.Validation("user is not a staff member")
	}

	now := time.Now()
	user.IsApproved = true
	user.Specialization = &specialization
	user.ApprovedBy = &adminID
	user.ApprovedAt = &now

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to approve staff member: %w", err)
	}

	if err := s.emailSvc.Send(user.Email, "Your staff account has been approved",
		fmt.Sprintf("Hi %s, your account is approved and you can now receive bookings.", user.Name)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("approval notification not delivered")
	}

	log.Info().Str("staff_id", staffID.String()).Str("approved_by", adminID.String()).Msg("staff member approved")
	return user, nil
}

// RejectStaff removes a pending staff account outright.
func (s *Service) RejectStaff(ctx context.Context, staffID uuid.UUID) error {
	user, err := s.GetUser(ctx, staffID)
	if err != nil {
		return err
	}
	if user.Role != model.RoleStaff {
		return apperrors.Validation("user is not a staff member")
	}

	if err := s.repo.Delete(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}

	log.Info().Str("staff_id", staffID.String()).Msg("staff member rejected and removed")
	return nil
}

// UpdateSpecialization may be used before or after approval.
func (s *Service) UpdateSpecialization(ctx context.Context, staffID uuid.UUID, specialization string) (*model.User, error) {
	if specialization == "" {
		return nil, apperrors.Validation("specialization is required")
	}

	user, err := s.GetUser(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleStaff {
		return nil, apperrors.Validation("user is not a staff member")
	}

	user.Specialization = &specialization
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update specialization: %w", err)
	}
	return user, nil
}
