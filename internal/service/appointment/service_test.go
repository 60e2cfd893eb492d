package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

type memAppointmentRepo struct {
	items map[uuid.UUID]*model.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{items: make(map[uuid.UUID]*model.Appointment)}
}

func (r *memAppointmentRepo) slotTaken(apt *model.Appointment) bool {
	for _, existing := range r.items {
		if existing.ID == apt.ID {
			continue
		}
		if existing.Status == model.AppointmentStatusCancelled {
			continue
		}
		if existing.StaffID == apt.StaffID &&
			existing.AppointmentDate.Equal(apt.AppointmentDate) &&
			existing.StartTime == apt.StartTime {
			return true
		}
	}
	return false
}

func (r *memAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	if apt.Status != model.AppointmentStatusCancelled && r.slotTaken(apt) {
		return repository.ErrSlotTaken
	}
	apt.ID = uuid.New()
	cp := *apt
	r.items[apt.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *apt
	return &cp, nil
}

func (r *memAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.items[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	if apt.Status != model.AppointmentStatusCancelled && r.slotTaken(apt) {
		return repository.ErrSlotTaken
	}
	cp := *apt
	r.items[apt.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.items {
		if filters.CustomerID != nil && apt.CustomerID != *filters.CustomerID {
			continue
		}
		if filters.StaffID != nil && apt.StaffID != *filters.StaffID {
			continue
		}
		if filters.Status != nil && apt.Status != *filters.Status {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.items {
		if apt.AppointmentDate.Before(start) || apt.AppointmentDate.After(end) {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

type memServiceRepo struct {
	items map[uuid.UUID]*model.Service
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
	r.items[svc.ID] = svc
	return nil
}

func (r *memServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
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

type memUserRepo struct {
	items map[uuid.UUID]*model.User
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
	if _, ok := r.items[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) ListStaff(_ context.Context, approved *bool) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.items {
		if u.Role != model.RoleStaff {
			continue
		}
		if approved != nil && u.IsApproved != *approved {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	apts     *memAppointmentRepo
	services *memServiceRepo
	users    *memUserRepo

	customer model.Caller
	staff    model.Caller
	admin    model.Caller
	haircut  *model.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	apts := newMemAppointmentRepo()
	services := &memServiceRepo{items: make(map[uuid.UUID]*model.Service)}
	users := &memUserRepo{items: make(map[uuid.UUID]*model.User)}

	spec := "color"
	staffUser := &model.User{Name: "Dana", Email: "dana@salon.test", Role: model.RoleStaff, IsApproved: true, Specialization: &spec}
	require.NoError(t, users.Create(context.Background(), staffUser))

	customerUser := &model.User{Name: "Casey", Email: "casey@customer.test", Role: model.RoleCustomer, IsApproved: true}
	require.NoError(t, users.Create(context.Background(), customerUser))

	adminUser := &model.User{Name: "Alex", Email: "alex@salon.test", Role: model.RoleAdmin, IsApproved: true}
	require.NoError(t, users.Create(context.Background(), adminUser))

	haircut := &model.Service{Name: "Haircut", Category: model.CategoryHaircut, Price: 45, Duration: 30, IsActive: true}
	require.NoError(t, services.Create(context.Background(), haircut))

	return &fixture{
		svc:      NewService(apts, services, users),
		apts:     apts,
		services: services,
		users:    users,
		customer: model.Caller{ID: customerUser.ID, Role: model.RoleCustomer},
		staff:    model.Caller{ID: staffUser.ID, Role: model.RoleStaff},
		admin:    model.Caller{ID: adminUser.ID, Role: model.RoleAdmin},
		haircut:  haircut,
	}
}

func (f *fixture) book(t *testing.T, req *model.CreateAppointmentRequest) *model.Appointment {
	t.Helper()
	apt, err := f.svc.CreateAppointment(context.Background(), f.customer, req)
	require.NoError(t, err)
	return apt
}

func baseRequest(f *fixture) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		StaffID:         f.staff.ID,
		ServiceID:       f.haircut.ID,
		AppointmentDate: "2026-09-10",
		StartTime:       "10:00",
		EndTime:         "10:30",
	}
}

func TestCreateAppointmentSnapshotsServicePrice(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))
	assert.Equal(t, 45.0, apt.Amount)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, model.PaymentMethodCash, apt.PaymentMethod)
	assert.Equal(t, model.PaymentStatusPending, apt.PaymentStatus)

	// A later price change must not touch the stored snapshot.
	f.haircut.Price = 90
	stored, err := f.apts.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, stored.Amount)
}

func TestCreateAppointmentExplicitAmountWins(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(f)
	req.Amount = 60
	apt := f.book(t, req)
	assert.Equal(t, 60.0, apt.Amount)
}

func TestCreateAppointmentRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(f)
	req.AppointmentDate = "10/09/2026"
	_, err := f.svc.CreateAppointment(context.Background(), f.customer, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateAppointmentRejectsUnapprovedStaff(t *testing.T) {
	f := newFixture(t)

	pending := &model.User{Name: "Pat", Email: "pat@salon.test", Role: model.RoleStaff, IsApproved: false}
	require.NoError(t, f.users.Create(context.Background(), pending))

	req := baseRequest(f)
	req.StaffID = pending.ID
	_, err := f.svc.CreateAppointment(context.Background(), f.customer, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateAppointmentRejectsNonStaffTarget(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(f)
	req.StaffID = f.customer.ID
	_, err := f.svc.CreateAppointment(context.Background(), f.customer, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	f := newFixture(t)

	f.book(t, baseRequest(f))
	_, err := f.svc.CreateAppointment(context.Background(), f.customer, baseRequest(f))

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestSlotRebookableAfterCancel(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))
	_, err := f.svc.CancelAppointment(context.Background(), f.customer, apt.ID)
	require.NoError(t, err)

	rebooked := f.book(t, baseRequest(f))
	assert.NotEqual(t, apt.ID, rebooked.ID)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))
	_, err := f.svc.CancelAppointment(context.Background(), f.customer, apt.ID)
	require.NoError(t, err)

	again, err := f.svc.CancelAppointment(context.Background(), f.customer, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, again.Status)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to model.AppointmentStatus
		allowed  bool
	}{
		{model.AppointmentStatusPending, model.AppointmentStatusConfirmed, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCancelled, true},
		{model.AppointmentStatusPending, model.AppointmentStatusCompleted, false},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusCompleted, true},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled, true},
		{model.AppointmentStatusConfirmed, model.AppointmentStatusPending, false},
		{model.AppointmentStatusCompleted, model.AppointmentStatusPending, false},
		{model.AppointmentStatusCompleted, model.AppointmentStatusCancelled, false},
		{model.AppointmentStatusCancelled, model.AppointmentStatusPending, false},
		{model.AppointmentStatusCancelled, model.AppointmentStatusCancelled, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, transitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateRejectsInvalidTransition(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))

	confirmed := model.AppointmentStatusConfirmed
	_, err := f.svc.UpdateAppointment(context.Background(), f.staff, apt.ID, &model.UpdateAppointmentRequest{Status: &confirmed})
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	_, err = f.svc.UpdateAppointment(context.Background(), f.staff, apt.ID, &model.UpdateAppointmentRequest{Status: &completed})
	require.NoError(t, err)

	pending := model.AppointmentStatusPending
	_, err = f.svc.UpdateAppointment(context.Background(), f.staff, apt.ID, &model.UpdateAppointmentRequest{Status: &pending})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCustomerMayOnlyCancel(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))

	confirmed := model.AppointmentStatusConfirmed
	_, err := f.svc.UpdateAppointment(context.Background(), f.customer, apt.ID, &model.UpdateAppointmentRequest{Status: &confirmed})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	cancelled := model.AppointmentStatusCancelled
	updated, err := f.svc.UpdateAppointment(context.Background(), f.customer, apt.ID, &model.UpdateAppointmentRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
}

func TestCustomerMayNotReschedule(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))

	newStart := "14:00"
	_, err := f.svc.UpdateAppointment(context.Background(), f.customer, apt.ID, &model.UpdateAppointmentRequest{StartTime: &newStart})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	updated, err := f.svc.UpdateAppointment(context.Background(), f.staff, apt.ID, &model.UpdateAppointmentRequest{StartTime: &newStart})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.StartTime)
}

func TestCustomerMayNotTouchPaymentFields(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))

	paid := model.PaymentStatusPaid
	_, err := f.svc.UpdateAppointment(context.Background(), f.customer, apt.ID, &model.UpdateAppointmentRequest{PaymentStatus: &paid})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestAccessControl(t *testing.T) {
	f := newFixture(t)

	apt := f.book(t, baseRequest(f))

	otherUser := &model.User{Name: "Robin", Email: "robin@customer.test", Role: model.RoleCustomer}
	require.NoError(t, f.users.Create(context.Background(), otherUser))
	other := model.Caller{ID: otherUser.ID, Role: model.RoleCustomer}

	_, err := f.svc.GetAppointment(context.Background(), other, apt.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	_, err = f.svc.GetAppointment(context.Background(), f.staff, apt.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetAppointment(context.Background(), f.admin, apt.ID)
	assert.NoError(t, err)
}

func TestListAppointmentsRoleFiltered(t *testing.T) {
	f := newFixture(t)

	f.book(t, baseRequest(f))

	otherUser := &model.User{Name: "Robin", Email: "robin@customer.test", Role: model.RoleCustomer}
	require.NoError(t, f.users.Create(context.Background(), otherUser))
	other := model.Caller{ID: otherUser.ID, Role: model.RoleCustomer}

	req := baseRequest(f)
	req.StartTime = "11:00"
	req.EndTime = "11:30"
	_, err := f.svc.CreateAppointment(context.Background(), other, req)
	require.NoError(t, err)

	mine, err := f.svc.ListAppointments(context.Background(), f.customer, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	staffView, err := f.svc.ListAppointments(context.Background(), f.staff, nil)
	require.NoError(t, err)
	assert.Len(t, staffView, 2)

	all, err := f.svc.ListAppointments(context.Background(), f.admin, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
