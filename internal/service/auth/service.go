package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	"github.com/bookdesk/booking-api/pkg/auth"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/security"
)

const bcryptCost = 12

type Service struct {
	repo   repository.UserRepository
	jwtSvc auth.JWTService
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		repo:   repo,
		jwtSvc: jwtSvc,
		hasher: security.NewBcryptHasher(bcryptCost),
	}
}

// Register creates an account. Customers and admins are approved immediately;
// staff start unapproved and go through the approval workflow.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, apperrors.Validation("invalid role")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		IsApproved:   role != model.RoleStaff,
		Availability: []string{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email is already registered", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user registered")
	return &model.TokenResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials", err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", err)
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{Token: token, User: user}, nil
}

// ValidateToken resolves a bearer token into the caller identity.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Unauthorized("token expired", nil)
	}
	return claims, nil
}
