package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/app"
	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/mockapi"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/catalog"
	"staybook/internal/modules/profile"
	"staybook/internal/querycache"
	"staybook/internal/repository"
)

const demoUser = "user1"

type session struct {
	app *app.App
	ui  *TerminalUI
	out *bytes.Buffer
}

// newSession runs the client against a seeded fixture API.
func newSession(t *testing.T) *session {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	require.NoError(t, mockapi.Seed(context.Background(),
		repository.NewPropertyRepository(db), repository.NewProfileRepository(db), demoUser))

	srv := httptest.NewServer(mockapi.NewRouter(mockapi.NewServiceFromDB(db, zap.NewNop()), zap.NewNop(), nil))
	t.Cleanup(srv.Close)

	cfg := &config.Client{APIBaseURL: srv.URL, APITimeout: 5 * time.Second, DemoUserID: demoUser}
	out := &bytes.Buffer{}
	ui := NewTerminalUI(out)
	a := app.New(cfg, api.NewClientWithHTTP(srv.URL, srv.Client(), zap.NewNop()), ui, zap.NewNop())
	t.Cleanup(a.Close)

	return &session{app: a, ui: ui, out: out}
}

func (s *session) run(t *testing.T, opts Options) (string, error) {
	t.Helper()
	s.out.Reset()
	err := Run(context.Background(), s.app, opts, s.out)
	return s.out.String(), err
}

func TestRun_PropertiesSearch(t *testing.T) {
	s := newSession(t)

	out, err := s.run(t, Options{Cmd: CmdProperties, Query: "malibu"})
	require.NoError(t, err)
	assert.Contains(t, out, "Oceanfront Villa")
	assert.Contains(t, out, "$450/month")
	assert.NotContains(t, out, "Downtown Loft")

	out, err = s.run(t, Options{Cmd: CmdProperties, Query: "nowhere"})
	require.NoError(t, err)
	assert.Equal(t, "No properties found\n", out)
}

func TestRun_BookFlow(t *testing.T) {
	s := newSession(t)

	out, err := s.run(t, Options{Cmd: CmdBook, PropertyID: "1", CheckIn: "2024-07-01", CheckOut: "2024-07-05"})
	require.NoError(t, err)
	assert.Contains(t, out, "[Booking Confirmed] Your booking has been successfully created!")
	assert.Contains(t, out, "Booked Oceanfront Villa 2024-07-01 -> 2024-07-05 (confirmed)")
	assert.Equal(t, booking.RouteBookings, s.ui.Route())

	s.app.Booking.Wait()
	require.Equal(t, 1, s.app.Bookings.Len())

	out, err = s.run(t, Options{Cmd: CmdBookings})
	require.NoError(t, err)
	assert.Contains(t, out, "Oceanfront Villa")
	assert.Contains(t, out, "2024-07-01 -> 2024-07-05")
	assert.Contains(t, out, "confirmed")

	out, err = s.run(t, Options{Cmd: CmdProperty, PropertyID: "1"})
	require.NoError(t, err)
	assert.Contains(t, out, "You have already booked this property")

	out, err = s.run(t, Options{Cmd: CmdProperties})
	require.NoError(t, err)
	assert.Contains(t, out, "[Booked]")

	out, err = s.run(t, Options{Cmd: CmdProfile})
	require.NoError(t, err)
	assert.Contains(t, out, "Total bookings: 1")
}

func TestRun_BookRejectsInvalidDates(t *testing.T) {
	s := newSession(t)

	out, err := s.run(t, Options{Cmd: CmdBook, PropertyID: "2", CheckIn: "2024-07-10", CheckOut: "2024-07-10"})
	assert.ErrorIs(t, err, booking.ErrInvalidDates)
	assert.Contains(t, out, "[Invalid Dates] Check-out date must be after check-in date.")
	assert.Empty(t, s.ui.Route())
	assert.Zero(t, s.app.Bookings.Len())
}

func TestRun_PropertyDetails(t *testing.T) {
	s := newSession(t)

	out, err := s.run(t, Options{Cmd: CmdProperty, PropertyID: "4"})
	require.NoError(t, err)
	assert.Contains(t, out, "Lakeside Cottage")
	assert.Contains(t, out, "$2,400 / month")
	assert.Contains(t, out, "-cmd book -id 4")
	assert.NotContains(t, out, "Image:")

	_, err = s.run(t, Options{Cmd: CmdProperty, PropertyID: "missing"})
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestRun_EmptyBookings(t *testing.T) {
	s := newSession(t)

	out, err := s.run(t, Options{Cmd: CmdBookings})
	require.NoError(t, err)
	assert.Equal(t, "No bookings yet\n", out)
}

func TestRun_UnknownCommand(t *testing.T) {
	s := newSession(t)

	_, err := s.run(t, Options{Cmd: "dance"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_LogoutClearsProfile(t *testing.T) {
	s := newSession(t)

	_, err := s.run(t, Options{Cmd: CmdProfile})
	require.NoError(t, err)
	_, ok := s.app.Users.Profile()
	require.True(t, ok)

	out, err := s.run(t, Options{Cmd: CmdLogout})
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	_, ok = s.app.Users.Profile()
	assert.False(t, ok)
	assert.Equal(t, querycache.StatusIdle, s.app.Cache.Snapshot(profile.ProfileKey(demoUser)).Status)
}
