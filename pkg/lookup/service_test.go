package lookup

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
)

type fakeTransport struct {
	called bool
	req    *http.Request
	body   []byte
	resp   *http.Response
	err    error
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.called = true
	f.req = req
	if req.Body != nil {
		f.body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	return f.resp, f.err
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func testConfig() *core.LookupConfig {
	return &core.LookupConfig{
		BaseURL:      "https://project.supabase.co",
		APIKey:       "anon-key",
		FunctionPath: "/functions/v1/lookup-email",
	}
}

func TestNew_BuildsEndpoint(t *testing.T) {
	svc, err := New(testConfig(), Options{})
	require.NoError(t, err)

	impl, ok := svc.(*service)
	require.True(t, ok, "New should return *service implementation")
	assert.Equal(t, "https://project.supabase.co/functions/v1/lookup-email", impl.endpoint)
}

func TestNew_TrailingSlashBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.BaseURL = "https://project.supabase.co/"

	svc, err := New(cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, "https://project.supabase.co/functions/v1/lookup-email", svc.(*service).endpoint)
}

func TestNew_TimeoutFallsBackToConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = 3 * time.Second

	svc, err := New(cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, svc.(*service).timeout)

	svc, err = New(cfg, Options{Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Second, svc.(*service).timeout)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Options{})
	assert.EqualError(t, err, "cfg is required")

	cfg := testConfig()
	cfg.APIKey = " "
	_, err = New(cfg, Options{})
	assert.EqualError(t, err, "cfg.APIKey is required")

	cfg = testConfig()
	cfg.BaseURL = ""
	_, err = New(cfg, Options{})
	assert.EqualError(t, err, "cfg.BaseURL is required")

	cfg = testConfig()
	cfg.BaseURL = "project.supabase.co"
	_, err = New(cfg, Options{})
	assert.ErrorContains(t, err, "must be an absolute URL")
}
