package weekview

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/domain"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/schedule"
	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/service/weekview/models"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings     []*domain.Booking
	getErr       error
	deleted      [][]string
	deletedCount int64
}

func (r *fakeBookingRepo) GetByDates(_ context.Context, dates []string) ([]*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.bookings, nil
}

func (r *fakeBookingRepo) DeleteByDates(_ context.Context, dates []string) (int64, error) {
	r.deleted = append(r.deleted, dates)
	return r.deletedCount, nil
}

type fakeCancellationRepo struct {
	requests []*domain.CancellationRequest
}

func (r *fakeCancellationRepo) GetByDates(_ context.Context, dates []string) ([]*domain.CancellationRequest, error) {
	return r.requests, nil
}

func (r *fakeCancellationRepo) ListAll(_ context.Context) ([]*domain.CancellationRequest, error) {
	return r.requests, nil
}

type fakeWeekCache struct {
	entries     map[string][]byte
	invalidated []string
	getErr      error
}

func newFakeWeekCache() *fakeWeekCache {
	return &fakeWeekCache{entries: make(map[string][]byte)}
}

func (c *fakeWeekCache) Get(_ context.Context, weekStart string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	payload, ok := c.entries[weekStart]
	return payload, ok, nil
}

func (c *fakeWeekCache) Set(_ context.Context, weekStart string, payload []byte) error {
	c.entries[weekStart] = payload
	return nil
}

func (c *fakeWeekCache) Invalidate(_ context.Context, weekStart string) error {
	c.invalidated = append(c.invalidated, weekStart)
	delete(c.entries, weekStart)
	return nil
}

func newTestService(t *testing.T, bookings *fakeBookingRepo, requests *fakeCancellationRepo, cache *fakeWeekCache) *Service {
	t.Helper()
	scheduleSvc, err := schedule.New("Asia/Kolkata", 0)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	return &Service{
		bookingRepo:      bookings,
		cancellationRepo: requests,
		schedule:         scheduleSvc,
		cache:            cache,
		timeProvider:     &fixedTimeProvider{now: time.Date(2026, 8, 26, 12, 0, 0, 0, loc)},
		logger:           noopLogger{},
	}
}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:       "booking-1",
		UserID:   "user-1",
		UserName: "User One",
		Date:     "2026-08-26",
		Slot:     18,
		BandName: "The Resonators",
	}
}

func TestGetWeek_BuildsViewOnCacheMiss(t *testing.T) {
	cancelled := activeBooking()
	cancelled.ID = "booking-2"
	cancelled.Slot = 19
	cancelled.Cancelled = true

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{activeBooking(), cancelled}}
	cache := newFakeWeekCache()
	svc := newTestService(t, bookings, &fakeCancellationRepo{}, cache)

	view, err := svc.GetWeek(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Dates, 7)
	assert.Equal(t, "2026-08-23", view.Dates[0])
	require.Len(t, view.Days, 7)

	// Среда — будний день: 11 слотов начиная с 17
	wednesday := view.Days[3]
	assert.Equal(t, "2026-08-26", wednesday.Date)
	assert.Equal(t, string(schedule.DayTypeWeekday), wednesday.DayType)
	require.Len(t, wednesday.Slots, 11)
	assert.Equal(t, models.SlotView{Slot: 17, Label: "17:30"}, wednesday.Slots[0])

	// Оба бронирования в списке, но в карте занятости только активное
	assert.Len(t, view.Bookings, 2)
	occupant, ok := view.DateSlotMap["2026-08-26"][18]
	require.True(t, ok)
	assert.Equal(t, "booking-1", occupant.BookingID)
	_, ok = view.DateSlotMap["2026-08-26"][19]
	assert.False(t, ok)

	// Собранный вид попал в кэш
	_, ok = cache.entries["2026-08-23"]
	assert.True(t, ok)
}

func TestGetWeek_ServesFromCache(t *testing.T) {
	cached := &models.WeekView{Dates: []string{"2026-08-23"}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	bookings := &fakeBookingRepo{getErr: assert.AnError} // репозиторий недоступен
	cache := newFakeWeekCache()
	cache.entries["2026-08-23"] = payload

	svc := newTestService(t, bookings, &fakeCancellationRepo{}, cache)

	view, err := svc.GetWeek(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-23"}, view.Dates)
}

func TestGetWeek_CacheErrorFallsBackToRepositories(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{activeBooking()}}
	cache := newFakeWeekCache()
	cache.getErr = assert.AnError

	svc := newTestService(t, bookings, &fakeCancellationRepo{}, cache)

	view, err := svc.GetWeek(context.Background())

	require.NoError(t, err)
	assert.Len(t, view.Bookings, 1)
}

func TestGetWeek_RepositoryError(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: assert.AnError}
	svc := newTestService(t, bookings, &fakeCancellationRepo{}, newFakeWeekCache())

	_, err := svc.GetWeek(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListCancellationRequests_AdminOnly(t *testing.T) {
	requests := &fakeCancellationRepo{requests: []*domain.CancellationRequest{
		{ID: "request-1", BookingID: "booking-1", Status: domain.RequestPending},
	}}
	svc := newTestService(t, &fakeBookingRepo{}, requests, newFakeWeekCache())

	_, err := svc.ListCancellationRequests(context.Background(), false)
	assert.ErrorIs(t, err, ErrAdminRequired)

	views, err := svc.ListCancellationRequests(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "request-1", views[0].ID)
}

func TestResetWeek_AdminOnly(t *testing.T) {
	bookings := &fakeBookingRepo{deletedCount: 5}
	svc := newTestService(t, bookings, &fakeCancellationRepo{}, newFakeWeekCache())

	_, err := svc.ResetWeek(context.Background(), false)
	assert.ErrorIs(t, err, ErrAdminRequired)
	assert.Empty(t, bookings.deleted)
}

func TestResetWeek_DeletesCurrentWeekAndInvalidatesCache(t *testing.T) {
	bookings := &fakeBookingRepo{deletedCount: 5}
	cache := newFakeWeekCache()
	svc := newTestService(t, bookings, &fakeCancellationRepo{}, cache)

	result, err := svc.ResetWeek(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.DeletedCount)

	require.Len(t, bookings.deleted, 1)
	require.Len(t, bookings.deleted[0], 7)
	assert.Equal(t, "2026-08-23", bookings.deleted[0][0])
	assert.Equal(t, "2026-08-29", bookings.deleted[0][6])

	assert.Equal(t, []string{"2026-08-23"}, cache.invalidated)
}
