package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type memServiceRepo struct {
	items map[uuid.UUID]*model.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{items: make(map[uuid.UUID]*model.Service)}
}

func (r *memServiceRepo) Create(_ context.Context, svc *model.Service) error {
	svc.ID = uuid.New()
	r.items[svc.ID] = svc
	return nil
}

func (r *memServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

func (r *memServiceRepo) Update(_ context.Context, svc *model.Service) error {
	if _, ok := r.items[svc.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[svc.ID] = svc
	return nil
}

func (r *memServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memServiceRepo) ListActive(_ context.Context) ([]*model.Service, error) {
	var out []*model.Service
	for _, svc := range r.items {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

func TestCreateServiceDefaultsCategory(t *testing.T) {
	svc := NewService(newMemServiceRepo())

	created, err := svc.CreateService(context.Background(), &model.CreateServiceRequest{
		Name:        "Beard Trim",
		Description: "Quick trim",
		Duration:    15,
		Price:       20,
	})
	require.NoError(t, err)

	assert.Equal(t, model.CategoryOther, created.Category)
	assert.True(t, created.IsActive)
}

func TestCreateServiceRejectsUnknownCategory(t *testing.T) {
	svc := NewService(newMemServiceRepo())

	_, err := svc.CreateService(context.Background(), &model.CreateServiceRequest{
		Name:        "Beard Trim",
		Description: "Quick trim",
		Duration:    15,
		Price:       20,
		Category:    "welding",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateServicePartialFields(t *testing.T) {
	repo := newMemServiceRepo()
	svc := NewService(repo)

	created, err := svc.CreateService(context.Background(), &model.CreateServiceRequest{
		Name:        "Haircut",
		Description: "Classic cut",
		Duration:    30,
		Price:       45,
		Category:    model.CategoryHaircut,
	})
	require.NoError(t, err)

	newPrice := 55.0
	inactive := false
	updated, err := svc.UpdateService(context.Background(), created.ID, &model.UpdateServiceRequest{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, 55.0, updated.Price)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Haircut", updated.Name)
	assert.Equal(t, model.CategoryHaircut, updated.Category)

	active, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestDeleteMissingServiceIsNotFound(t *testing.T) {
	svc := NewService(newMemServiceRepo())

	err := svc.DeleteService(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
