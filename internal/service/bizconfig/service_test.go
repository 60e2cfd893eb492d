package bizconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
)

type memConfigRepo struct {
	cfg     *model.BusinessConfig
	upserts int
	gets    int
}

func (r *memConfigRepo) Get(context.Context) (*model.BusinessConfig, error) {
	r.gets++
	if r.cfg == nil {
		return nil, repository.ErrNotFound
	}
	return r.cfg, nil
}

func (r *memConfigRepo) Upsert(_ context.Context, cfg *model.BusinessConfig) error {
	r.upserts++
	r.cfg = cfg
	return nil
}

func TestGetConfigCreatesDefaultsOnFirstRead(t *testing.T) {
	repo := &memConfigRepo{}
	svc := NewService(repo)

	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ConfigKey, cfg.Key)
	assert.Equal(t, model.BusinessTypeSalon, cfg.BusinessType)
	assert.Equal(t, 1, repo.upserts)

	// Second read is served from cache.
	_, err = svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
}

func TestUpdateConfigInvalidatesCache(t *testing.T) {
	repo := &memConfigRepo{}
	svc := NewService(repo)

	_, err := svc.GetConfig(context.Background())
	require.NoError(t, err)

	updated, err := svc.UpdateConfig(context.Background(), &model.UpdateBusinessConfigRequest{
		BusinessName: "Glow Clinic",
		BusinessType: model.BusinessTypeClinic,
		PrimaryColor: "#123456",
		Terminology: model.Terminology{
			Provider: model.Label{Singular: "Doctor", Plural: "Doctors"},
		},
		Features: model.FeatureToggles{RequireStaffApproval: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Glow Clinic", updated.BusinessName)

	// The next read reflects the update without another repo round trip.
	cfg, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Glow Clinic", cfg.BusinessName)
	assert.Equal(t, model.BusinessTypeClinic, cfg.BusinessType)
	assert.Equal(t, "Doctor", cfg.Terminology.Provider.Singular)
	assert.Equal(t, model.ConfigKey, cfg.Key)
}
