package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	"github.com/bookdesk/booking-api/pkg/auth"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type memUserRepo struct {
	items map[uuid.UUID]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: make(map[uuid.UUID]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.items {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.New()
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *model.User) error {
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

func (r *memUserRepo) ListStaff(_ context.Context, _ *bool) ([]*model.User, error) {
	return nil, nil
}

func newTestService() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc), repo
}

func registerRequest(role model.Role) *model.RegisterRequest {
	return &model.RegisterRequest{
		Name:     "Casey",
		Email:    "casey@customer.test",
		Password: "sekret1",
		Phone:    "555-0100",
		Role:     role,
	}
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest(""))
	require.NoError(t, err)

	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.True(t, resp.User.IsApproved)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.PasswordHash)
}

func TestRegisterStaffStartsUnapproved(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest(model.RoleStaff))
	require.NoError(t, err)
	assert.False(t, resp.User.IsApproved)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest("superuser"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest(""))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest(""))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), registerRequest(""))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "casey@customer.test",
		Password: "sekret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "casey@customer.test",
		Password: "wrong",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@customer.test",
		Password: "sekret1",
	})
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest(""))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)

	_, err = svc.ValidateToken(context.Background(), "garbage")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
