package resolve_cancellation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	bookingRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/booking"
	cancellationRepo "github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/infra/storage/cancellation"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type resolvedCall struct {
	id       string
	status   domain.RequestStatus
	adminID  string
	response string
}

type fakeCancellationRepo struct {
	request    *domain.CancellationRequest
	getErr     error
	resolved   []resolvedCall
	resolveErr error
}

func (r *fakeCancellationRepo) GetByID(_ context.Context, id string) (*domain.CancellationRequest, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.request == nil || r.request.ID != id {
		return nil, cancellationRepo.ErrRequestNotFound
	}
	return r.request, nil
}

func (r *fakeCancellationRepo) Resolve(_ context.Context, id string, status domain.RequestStatus, adminID, adminEmail, response string) error {
	if r.resolveErr != nil {
		return r.resolveErr
	}
	r.resolved = append(r.resolved, resolvedCall{id: id, status: status, adminID: adminID, response: response})
	return nil
}

type fakeBookingRepo struct {
	softCancelled []string
	softCancelErr error
}

func (r *fakeBookingRepo) SoftCancel(_ context.Context, id, byID, byEmail string) error {
	if r.softCancelErr != nil {
		return r.softCancelErr
	}
	r.softCancelled = append(r.softCancelled, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeWeekCache struct {
	invalidated []string
}

func (c *fakeWeekCache) Invalidate(_ context.Context, weekStart string) error {
	c.invalidated = append(c.invalidated, weekStart)
	return nil
}

func pendingRequest() *domain.CancellationRequest {
	return &domain.CancellationRequest{
		ID:        "request-1",
		BookingID: "booking-1",
		UserID:    "user-1",
		Date:      "2026-08-26",
		Slot:      18,
		Status:    domain.RequestPending,
	}
}

func newTestUseCase(t *testing.T, requests *fakeCancellationRepo, bookings *fakeBookingRepo, cache *fakeWeekCache) *UseCase {
	t.Helper()
	scheduleSvc, err := schedule.New("Asia/Kolkata", 0)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	return &UseCase{
		cancellationRepo: requests,
		bookingRepo:      bookings,
		schedule:         scheduleSvc,
		txManager:        fakeTxManager{},
		weekCache:        cache,
		timeProvider:     &fixedTimeProvider{now: time.Date(2026, 8, 26, 12, 0, 0, 0, loc)},
		logger:           noopLogger{},
	}
}

func approveRequest() *Request {
	return &Request{
		AdminID:    "admin-1",
		AdminEmail: "admin@example.com",
		IsAdmin:    true,
		RequestID:  "request-1",
		Action:     ActionApprove,
		Response:   "approved, slot freed",
	}
}

func TestExecute_ApproveCancelsBooking(t *testing.T) {
	requests := &fakeCancellationRepo{request: pendingRequest()}
	bookings := &fakeBookingRepo{}
	cache := &fakeWeekCache{}
	uc := newTestUseCase(t, requests, bookings, cache)

	err := uc.Execute(context.Background(), approveRequest())

	require.NoError(t, err)
	require.Len(t, requests.resolved, 1)
	assert.Equal(t, domain.RequestApproved, requests.resolved[0].status)
	assert.Equal(t, "admin-1", requests.resolved[0].adminID)

	assert.Equal(t, []string{"booking-1"}, bookings.softCancelled)
	assert.Equal(t, []string{"2026-08-23"}, cache.invalidated)
}

func TestExecute_RejectLeavesBookingUntouched(t *testing.T) {
	requests := &fakeCancellationRepo{request: pendingRequest()}
	bookings := &fakeBookingRepo{}
	cache := &fakeWeekCache{}
	uc := newTestUseCase(t, requests, bookings, cache)

	req := approveRequest()
	req.Action = ActionReject
	req.Response = "slot is needed"

	err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, requests.resolved, 1)
	assert.Equal(t, domain.RequestRejected, requests.resolved[0].status)

	assert.Empty(t, bookings.softCancelled)
	assert.Empty(t, cache.invalidated)
}

func TestExecute_NonAdminForbidden(t *testing.T) {
	requests := &fakeCancellationRepo{request: pendingRequest()}
	uc := newTestUseCase(t, requests, &fakeBookingRepo{}, &fakeWeekCache{})

	req := approveRequest()
	req.IsAdmin = false

	err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAdminRequired)
	assert.Empty(t, requests.resolved)
}

func TestExecute_InvalidAction(t *testing.T) {
	uc := newTestUseCase(t, &fakeCancellationRepo{request: pendingRequest()}, &fakeBookingRepo{}, &fakeWeekCache{})

	req := approveRequest()
	req.Action = "escalate"

	err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestExecute_RequestNotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeCancellationRepo{}, &fakeBookingRepo{}, &fakeWeekCache{})

	err := uc.Execute(context.Background(), approveRequest())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_AlreadyProcessed(t *testing.T) {
	requests := &fakeCancellationRepo{
		request:    pendingRequest(),
		resolveErr: cancellationRepo.ErrAlreadyProcessed,
	}
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(t, requests, bookings, &fakeWeekCache{})

	err := uc.Execute(context.Background(), approveRequest())

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	// Повторное разрешение не трогает бронирование
	assert.Empty(t, bookings.softCancelled)
}

func TestExecute_ApproveToleratesMissingBooking(t *testing.T) {
	requests := &fakeCancellationRepo{request: pendingRequest()}
	bookings := &fakeBookingRepo{softCancelErr: bookingRepo.ErrBookingNotFound}
	cache := &fakeWeekCache{}
	uc := newTestUseCase(t, requests, bookings, cache)

	// Бронирование уже удалено сбросом недели: запрос всё равно разрешается
	err := uc.Execute(context.Background(), approveRequest())

	require.NoError(t, err)
	require.Len(t, requests.resolved, 1)
	assert.Equal(t, domain.RequestApproved, requests.resolved[0].status)
}

func TestExecute_SoftCancelFailureSurfacesInconsistency(t *testing.T) {
	requests := &fakeCancellationRepo{request: pendingRequest()}
	bookings := &fakeBookingRepo{softCancelErr: fmt.Errorf("connection reset")}
	cache := &fakeWeekCache{}
	uc := newTestUseCase(t, requests, bookings, cache)

	err := uc.Execute(context.Background(), approveRequest())

	assert.ErrorIs(t, err, ErrInconsistentState)
	assert.Empty(t, cache.invalidated)
}
