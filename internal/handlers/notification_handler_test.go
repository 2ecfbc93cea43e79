package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/carhubapp/carhub-server/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubMaintenanceStore struct {
	windows  int
	failWith error
}

func (s *stubMaintenanceStore) CreateWindow(_ context.Context, _, _ time.Time) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.windows++
	return nil
}

func (s *stubMaintenanceStore) WindowActiveAt(context.Context, time.Time) (bool, error) {
	return false, nil
}

func newNotificationTestApp(st store.MaintenanceStore) *fiber.App {
	svc := services.NewMaintenanceService(st, 5*time.Second)
	h := NewNotificationHandler(svc, nil)
	app := fiber.New()
	app.Post("/api/notification/start", h.Start)
	return app
}

func postStart(t *testing.T, app *fiber.App, endTime string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(dto.StartMaintenanceRequest{EndTime: endTime})
	req := httptest.NewRequest(fiber.MethodPost, "/api/notification/start", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestStartMaintenanceWindow(t *testing.T) {
	st := &stubMaintenanceStore{}
	app := newNotificationTestApp(st)

	resp := postStart(t, app, time.Now().UTC().Add(time.Hour).Format(time.RFC3339))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, st.windows)
}

func TestStartMaintenanceWindowRejectsPastEnd(t *testing.T) {
	st := &stubMaintenanceStore{}
	app := newNotificationTestApp(st)

	resp := postStart(t, app, time.Now().UTC().Add(-time.Hour).Format(time.RFC3339))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, services.ErrWindowInPast.Error(), body.Message)
	require.Zero(t, st.windows)
}

func TestStartMaintenanceWindowRejectsBadTimestamp(t *testing.T) {
	app := newNotificationTestApp(&stubMaintenanceStore{})

	resp := postStart(t, app, "not-a-timestamp")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStartMaintenanceWindowStoreFailureIsServerError(t *testing.T) {
	st := &stubMaintenanceStore{failWith: errors.New(`relation "maintenance_windows" does not exist`)}
	app := newNotificationTestApp(st)

	// A storage failure is not a client error: it must reach the boundary
	// error handler instead of being answered as a 400 with internal detail.
	resp := postStart(t, app, time.Now().UTC().Add(time.Hour).Format(time.RFC3339))
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
