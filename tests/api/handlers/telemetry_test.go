package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetwatch/src/api/handlers"
	"fleetwatch/src/schemas"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelemetryController struct{}

func (c *fakeTelemetryController) GetControllerAlarms(_ context.Context, controllerID uint, _ int) ([]*schemas.AlarmResponse, error) {
	return []*schemas.AlarmResponse{{ID: 1, ControllerID: controllerID, Code: "E-1001"}}, nil
}

func (c *fakeTelemetryController) GetControllerVariables(_ context.Context, controllerID uint) ([]*schemas.VariableResponse, error) {
	return []*schemas.VariableResponse{{ID: 1, ControllerID: controllerID, Name: "speed"}}, nil
}

func (c *fakeTelemetryController) GetControllerIOSignals(_ context.Context, controllerID uint) ([]*schemas.IOSignalResponse, error) {
	return []*schemas.IOSignalResponse{{ID: 1, ControllerID: controllerID, Name: "gripper"}}, nil
}

func (c *fakeTelemetryController) GetControllerUtilization(_ context.Context, controllerID uint, _, _ time.Time) ([]*schemas.UtilizationResponse, error) {
	return []*schemas.UtilizationResponse{{ControllerID: controllerID}}, nil
}

func newTelemetryTestServer() *httptest.Server {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := &handlers.Handler{TelemetryController: &fakeTelemetryController{}, Logger: logger}

	r := chi.NewRouter()
	r.Route("/api/controllers/{id}", func(r chi.Router) {
		r.Get("/alarms", h.GetControllerAlarms)
		r.Get("/variables", h.GetControllerVariables)
		r.Get("/io", h.GetControllerIOSignals)
		r.Get("/utilization", h.GetControllerUtilization)
	})
	return httptest.NewServer(r)
}

func telemetryGet(t *testing.T, url string, authorized bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if authorized {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestTelemetryEndpointsRequireToken(t *testing.T) {
	ts := newTelemetryTestServer()
	defer ts.Close()

	paths := []string{
		"/api/controllers/1/alarms",
		"/api/controllers/1/variables",
		"/api/controllers/1/io",
		"/api/controllers/1/utilization?startDate=2024-01-01&endDate=2024-01-31",
	}
	for _, path := range paths {
		res := telemetryGet(t, ts.URL+path, false)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, path)
	}
}

func TestTelemetryEndpointsServeWithToken(t *testing.T) {
	ts := newTelemetryTestServer()
	defer ts.Close()

	paths := []string{
		"/api/controllers/1/alarms",
		"/api/controllers/1/variables",
		"/api/controllers/1/io",
		"/api/controllers/1/utilization?startDate=2024-01-01&endDate=2024-01-31",
	}
	for _, path := range paths {
		res := telemetryGet(t, ts.URL+path, true)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}
}
