package booking

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/domain"
	"staybook/internal/querycache"
	"staybook/internal/store"
)

type MockBookingAPI struct {
	mock.Mock
}

func (m *MockBookingAPI) GetUserBookings(ctx context.Context, userID string) ([]domain.BookingWithProperty, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingWithProperty), args.Error(1)
}

func (m *MockBookingAPI) CreateBooking(ctx context.Context, req api.CreateBookingRequest) (domain.BookingWithProperty, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.BookingWithProperty), args.Error(1)
}

type recorder struct {
	alerts []Alert
	routes []string
}

func (r *recorder) Alert(a Alert)         { r.alerts = append(r.alerts, a) }
func (r *recorder) Navigate(route string) { r.routes = append(r.routes, route) }

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(m *MockBookingAPI, cfg Config) (*Service, *store.BookingStore, *querycache.Cache, *recorder) {
	if cfg.UserID == "" {
		cfg.UserID = "user1"
	}
	bookings := store.NewBookingStore(zap.NewNop())
	cache := querycache.New(zap.NewNop())
	ui := &recorder{}
	return NewService(m, bookings, cache, ui, ui, cfg, zap.NewNop()), bookings, cache, ui
}

func created(id, propertyID, checkIn, checkOut string) domain.BookingWithProperty {
	return domain.JoinBooking(domain.Booking{
		ID:       id,
		UserID:   "user1",
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   domain.BookingConfirmed,
	}, domain.Property{ID: propertyID, Title: "Sea View Loft"})
}

func TestService_Submit_Success(t *testing.T) {
	m := new(MockBookingAPI)
	svc, bookings, cache, ui := newTestService(m, Config{})

	want := api.CreateBookingRequest{
		PropertyID: "p1",
		UserID:     "user1",
		CheckIn:    "2024-07-01",
		CheckOut:   "2024-07-05",
		Status:     domain.BookingConfirmed,
	}
	result := created("b1", "p1", "2024-07-01", "2024-07-05")
	m.On("CreateBooking", mock.Anything, want).Return(result, nil).Once()

	// Prime the bookings list so the invalidation is observable.
	m.On("GetUserBookings", mock.Anything, "user1").Return([]domain.BookingWithProperty{}, nil).Once()
	_, err := svc.ListBookings(context.Background())
	require.NoError(t, err)

	form := NewForm(day("2024-06-01"))
	form.SetDates(day("2024-07-01"), day("2024-07-05"))

	got, err := svc.Submit(context.Background(), "p1", form)
	require.NoError(t, err)
	assert.Equal(t, result, got)

	require.Equal(t, 1, bookings.Len())
	stored := bookings.Bookings()[0]
	assert.Equal(t, "p1", stored.PropertyID)
	assert.Equal(t, "2024-07-01", stored.CheckIn)
	assert.Equal(t, "2024-07-05", stored.CheckOut)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.True(t, bookings.IsBooked("p1"))

	assert.True(t, cache.Snapshot(BookingsKey("user1")).Stale)
	assert.Equal(t, []Alert{AlertBookingConfirmed}, ui.alerts)
	assert.Equal(t, []string{RouteBookings}, ui.routes)
	assert.False(t, form.Submitting())

	// The next read goes to the server again.
	m.On("GetUserBookings", mock.Anything, "user1").Return([]domain.BookingWithProperty{result}, nil).Once()
	list, err := svc.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingWithProperty{result}, list)
	m.AssertExpectations(t)
}

func TestService_Submit_ForcesConfirmedStatus(t *testing.T) {
	m := new(MockBookingAPI)
	svc, _, _, _ := newTestService(m, Config{UserID: "user9"})

	m.On("CreateBooking", mock.Anything, mock.MatchedBy(func(req api.CreateBookingRequest) bool {
		return req.Status == domain.BookingConfirmed && req.UserID == "user9"
	})).Return(created("b1", "p1", "2024-06-10", "2024-06-11"), nil)

	form := NewForm(day("2024-06-10"))
	_, err := svc.Submit(context.Background(), "p1", form)
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestService_Submit_RejectsInvalidDates(t *testing.T) {
	tests := []struct {
		description string
		checkIn     string
		checkOut    string
		wantErr     error
	}{
		{description: "same day", checkIn: "2024-06-10", checkOut: "2024-06-10", wantErr: ErrInvalidDates},
		{description: "check-out before check-in", checkIn: "2024-06-10", checkOut: "2024-06-09", wantErr: ErrInvalidDates},
		{description: "next day", checkIn: "2024-06-10", checkOut: "2024-06-11"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			m := new(MockBookingAPI)
			svc, bookings, _, ui := newTestService(m, Config{})
			if tt.wantErr == nil {
				m.On("CreateBooking", mock.Anything, mock.Anything).
					Return(created("b1", "p1", tt.checkIn, tt.checkOut), nil)
			}

			form := NewForm(day(tt.checkIn))
			form.SetDates(day(tt.checkIn), day(tt.checkOut))
			_, err := svc.Submit(context.Background(), "p1", form)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, []Alert{AlertInvalidDates}, ui.alerts)
				assert.Empty(t, ui.routes)
				assert.Equal(t, 0, bookings.Len())
				m.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, bookings.Len())
		})
	}
}

func TestService_Submit_SameDayDifferentHoursIsRejected(t *testing.T) {
	m := new(MockBookingAPI)
	svc, bookings, _, ui := newTestService(m, Config{})

	form := NewForm(day("2024-06-10").Add(9 * time.Hour))
	form.SetDates(day("2024-06-10").Add(9*time.Hour), day("2024-06-10").Add(18*time.Hour))
	_, err := svc.Submit(context.Background(), "p1", form)

	require.ErrorIs(t, err, ErrInvalidDates)
	assert.Equal(t, []Alert{AlertInvalidDates}, ui.alerts)
	assert.Equal(t, 0, bookings.Len())
	m.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestService_Submit_FailureStaysIdle(t *testing.T) {
	m := new(MockBookingAPI)
	svc, bookings, cache, ui := newTestService(m, Config{})

	apiErr := &api.Error{Status: http.StatusConflict, Message: "API request failed: Conflict"}
	m.On("CreateBooking", mock.Anything, mock.Anything).Return(domain.BookingWithProperty{}, apiErr).Once()

	form := NewForm(day("2024-06-10"))
	_, err := svc.Submit(context.Background(), "p1", form)

	require.ErrorIs(t, err, ErrCreateFailed)
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))
	assert.Equal(t, []Alert{AlertBookingFailed}, ui.alerts)
	assert.Empty(t, ui.routes)
	assert.Equal(t, 0, bookings.Len())
	assert.Equal(t, querycache.StatusIdle, cache.Snapshot(BookingsKey("user1")).Status)
	assert.False(t, form.Submitting())
	m.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestService_Submit_SingleInFlightAttempt(t *testing.T) {
	m := new(MockBookingAPI)
	svc, _, _, _ := newTestService(m, Config{})

	entered := make(chan struct{})
	release := make(chan struct{})
	m.On("CreateBooking", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(created("b1", "p1", "2024-06-10", "2024-06-11"), nil).Once()

	form := NewForm(day("2024-06-10"))
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "p1", form)
		done <- err
	}()

	<-entered
	assert.True(t, form.Submitting())
	_, err := svc.Submit(context.Background(), "p1", form)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, form.Submitting())
}

func TestService_Submit_ReconcilesWithServer(t *testing.T) {
	m := new(MockBookingAPI)
	svc, bookings, cache, _ := newTestService(m, Config{Reconcile: true})

	optimistic := created("b1", "p1", "2024-07-01", "2024-07-05")
	serverView := optimistic
	serverView.Status = domain.BookingPending

	m.On("CreateBooking", mock.Anything, mock.Anything).Return(optimistic, nil).Once()
	m.On("GetUserBookings", mock.Anything, "user1").Return([]domain.BookingWithProperty{serverView}, nil).Once()

	form := NewForm(day("2024-06-01"))
	form.SetDates(day("2024-07-01"), day("2024-07-05"))
	_, err := svc.Submit(context.Background(), "p1", form)
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, []domain.BookingWithProperty{serverView}, bookings.Bookings())
	assert.False(t, bookings.IsBooked("p1"))
	st := cache.Snapshot(BookingsKey("user1"))
	assert.Equal(t, querycache.StatusSuccess, st.Status)
	assert.False(t, st.Stale)
	m.AssertExpectations(t)
}

func TestService_ListBookings_ErrorSurfaces(t *testing.T) {
	m := new(MockBookingAPI)
	svc, bookings, cache, _ := newTestService(m, Config{})

	boom := errors.New("offline")
	m.On("GetUserBookings", mock.Anything, "user1").Return(nil, boom).Once()
	_, err := svc.ListBookings(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, querycache.StatusError, cache.Snapshot(BookingsKey("user1")).Status)
	assert.Equal(t, 0, bookings.Len())

	list := []domain.BookingWithProperty{created("b1", "p1", "2024-06-10", "2024-06-11")}
	m.On("GetUserBookings", mock.Anything, "user1").Return(list, nil).Once()
	got, err := svc.RefreshBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestService_ListBookings_UsesCache(t *testing.T) {
	m := new(MockBookingAPI)
	svc, _, _, _ := newTestService(m, Config{})

	list := []domain.BookingWithProperty{created("b1", "p1", "2024-06-10", "2024-06-11")}
	m.On("GetUserBookings", mock.Anything, "user1").Return(list, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := svc.ListBookings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, list, got)
	}
	m.AssertNumberOfCalls(t, "GetUserBookings", 1)
}
