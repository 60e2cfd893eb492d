package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
)

func (r *businessConfigRepository) Get(ctx context.Context) (*model.BusinessConfig, error) {
	query := `SELECT * FROM business_config WHERE key = $1`

	var cfg model.BusinessConfig
	if err := r.db.GetContext(ctx, &cfg, query, model.ConfigKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business config: %w", err)
	}
	return &cfg, nil
}

func (r *businessConfigRepository) Upsert(ctx context.Context, cfg *model.BusinessConfig) error {
	query := `
		INSERT INTO business_config (
			key, business_name, business_type, logo,
			primary_color, secondary_color, terminology, features,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (key) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			business_type = EXCLUDED.business_type,
			logo = EXCLUDED.logo,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			terminology = EXCLUDED.terminology,
			features = EXCLUDED.features,
			updated_at = EXCLUDED.updated_at
	`
	cfg.Key = model.ConfigKey
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now()
	}
	cfg.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		cfg.Key,
		cfg.BusinessName,
		cfg.BusinessType,
		cfg.Logo,
		cfg.PrimaryColor,
		cfg.SecondaryColor,
		cfg.Terminology,
		cfg.Features,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert business config: %w", err)
	}
	return nil
}
