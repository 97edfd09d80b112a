package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantStatus int
	}{
		{
			name:       "all dependencies up",
			deps:       map[string]Pinger{"postgres": pingerFunc(func(context.Context) error { return nil })},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "redis down",
			deps: map[string]Pinger{
				"postgres": pingerFunc(func(context.Context) error { return nil }),
				"redis":    pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantStatus: fiber.StatusServiceUnavailable,
		},
		{
			name:       "nil dependency skipped",
			deps:       map[string]Pinger{"redis": nil},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("capture-portal", "test", tt.deps)
			app := fiber.New()
			app.Get("/ready", h.Ready)
			app.Get("/live", h.Live)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/live", nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			var live map[string]string
			require.NoError(t, json.Unmarshal(body, &live))
			assert.Equal(t, "alive", live["status"])
		})
	}
}

func TestPortalHandler_ProbeRedirects(t *testing.T) {
	h := NewPortalHandler(nil, true, "http://10.0.0.1/")
	app := fiber.New()
	for _, path := range CaptiveProbePaths {
		app.Get(path, h.Probe)
	}

	for _, path := range CaptiveProbePaths {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "http://10.0.0.1/", resp.Header.Get(fiber.HeaderLocation), path)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/generate_204/extra", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSurveyFields_PreservesPostedOrder(t *testing.T) {
	app := fiber.New()
	var got []string
	app.Post("/", func(c *fiber.Ctx) error {
		fields, err := surveyFields(c)
		if err != nil {
			return err
		}
		for _, f := range fields {
			got = append(got, f.Name+"="+f.Value)
		}
		return nil
	})

	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("zeta=1&alpha=2&mid=3"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta=1", "alpha=2", "mid=3"}, got)
}

func TestClientInfo(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		info := clientInfo(c)
		assert.NotEmpty(t, info.IP)
		assert.Equal(t, "agent/1.0", info.UserAgent)
		return nil
	})
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderUserAgent, "agent/1.0")
	_, err := app.Test(req)
	require.NoError(t, err)
}
