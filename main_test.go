package main

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
)

type routeTest struct {
	description  string
	route        string
	expectedCode int
	expectedBody string
}

func TestRoutes(t *testing.T) {
	cfg := core.NewConfig(
		core.WithSkipAuth(),
		core.WithOtelDisable(),
		core.WithLookupBaseURL("http://127.0.0.1:1"),
		core.WithLookupAPIKey("anon-key"),
	)

	app, err := buildApp(&cfg, core.NewNoopOtelService(), core.NewLoggerTo(cfg, io.Discard), nil)
	require.NoError(t, err)

	tests := []routeTest{
		{
			description:  "health route",
			route:        "/healthz",
			expectedCode: http.StatusOK,
			expectedBody: "OK",
		},
		{
			description:  "status without redis",
			route:        "/status",
			expectedCode: http.StatusOK,
		},
		{
			description:  "index route",
			route:        "/",
			expectedCode: http.StatusOK,
		},
		{
			description:  "non existing route",
			route:        "/i-dont-exist",
			expectedCode: http.StatusNotFound,
			expectedBody: "Cannot GET /i-dont-exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.route, nil)
			require.NoError(t, err)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedCode, resp.StatusCode, strings.TrimSpace(string(body)))
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, strings.TrimSpace(string(body)))
			}
		})
	}
}

func TestBuildApp_InvalidLookupConfig(t *testing.T) {
	cfg := core.NewConfig(core.WithSkipAuth(), core.WithLookupBaseURL("http://127.0.0.1:1"))

	_, err := buildApp(&cfg, core.NewNoopOtelService(), core.NewLoggerTo(cfg, io.Discard), nil)
	assert.Error(t, err)
}

func TestLogAPIKey(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	signed := func(exp time.Time) string {
		tok := jwt.New()
		require.NoError(t, tok.Set("role", "anon"))
		require.NoError(t, tok.Set(jwt.IssuerKey, "supabase"))
		require.NoError(t, tok.Set(jwt.ExpirationKey, exp))

		raw, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte("not-the-real-secret")))
		require.NoError(t, err)
		return string(raw)
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "opaque", key: "sb_publishable_abc", want: "lookup api key is opaque"},
		{name: "valid", key: signed(now.Add(24 * time.Hour)), want: "role=anon"},
		{name: "expired", key: signed(now.Add(-time.Hour)), want: "lookup api key has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := core.NewLoggerTo(core.NewConfig(), &buf)

			logAPIKey(logger, tt.key, now)

			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), tt.key)
		})
	}
}
