package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
)

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (
			id, name, description, duration, price, category, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.Name,
		svc.Description,
		svc.Duration,
		svc.Price,
		svc.Category,
		svc.IsActive,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `SELECT * FROM services WHERE id = $1`

	var svc model.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration = $3, price = $4,
			category = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.Description,
		svc.Duration,
		svc.Price,
		svc.Category,
		svc.IsActive,
		svc.UpdatedAt,
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *serviceRepository) ListActive(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT * FROM services WHERE is_active = true ORDER BY name ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
