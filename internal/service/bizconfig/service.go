package bizconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
)

const cacheKey = "business_config"

// Service serves the business configuration singleton through a process-wide
// read-through cache. Admin updates write through and invalidate, so every
// view sees the new terminology and feature toggles on the next read.
type Service struct {
	repo  repository.BusinessConfigRepository
	cache *gocache.Cache
}

func NewService(repo repository.BusinessConfigRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetConfig returns the singleton, lazily creating it with salon defaults on
// first read.
func (s *Service) GetConfig(ctx context.Context) (*model.BusinessConfig, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.BusinessConfig), nil
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load business config: %w", err)
		}

		cfg = model.DefaultBusinessConfig()
		if err := s.repo.Upsert(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default business config: %w", err)
		}
		log.Info().Msg("created default business config")
	}

	s.cache.Set(cacheKey, cfg, gocache.DefaultExpiration)
	return cfg, nil
}

// UpdateConfig replaces the singleton wholesale and reloads the cache.
func (s *Service) UpdateConfig(ctx context.Context, req *model.UpdateBusinessConfigRequest) (*model.BusinessConfig, error) {
	current, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &model.BusinessConfig{
		Key:            model.ConfigKey,
		BusinessName:   req.BusinessName,
		BusinessType:   req.BusinessType,
		Logo:           req.Logo,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Terminology:    req.Terminology,
		Features:       req.Features,
		CreatedAt:      current.CreatedAt,
	}

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to update business config: %w", err)
	}

	s.cache.Delete(cacheKey)
	s.cache.Set(cacheKey, cfg, gocache.DefaultExpiration)
	return cfg, nil
}
