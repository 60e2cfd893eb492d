package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	category := req.Category
	if category == "" {
		category = model.CategoryOther
	}
	if !category.Valid() {
		return nil, apperrors.Validation("invalid service category")
	}

	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    category,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, apperrors.Validation("invalid service category")
		}
		svc.Category = *req.Category
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("service", err)
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
