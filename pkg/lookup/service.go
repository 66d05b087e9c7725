package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
	"github.com/cohort-stats/skills-dashboard/pkg/oauthLocal"
)

const instrumentationName = "github.com/cohort-stats/skills-dashboard/pkg/lookup"

type Service interface {
	Lookup(ctx context.Context, email string) (Response, error)
}

type Options struct {
	// Base client wrapped with the bearer transport. Override for testing.
	HTTPClient *http.Client
	// Structured logger using slog package
	Logger *slog.Logger
	// Defaults to the global tracer provider.
	Tracer trace.Tracer
	// Defaults to the global meter provider.
	Meter metric.Meter
	// Per-call timeout; falls back to cfg.Timeout.
	Timeout time.Duration
}

type service struct {
	cfg      *core.LookupConfig
	endpoint string
	client   *http.Client
	logger   *slog.Logger
	tracer   trace.Tracer
	timeout  time.Duration

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func New(cfg *core.LookupConfig, opts Options) (Service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("cfg.APIKey is required")
	}

	endpoint, err := endpointURL(cfg.BaseURL, cfg.FunctionPath)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "lookup"),
		slog.String("endpoint", endpoint),
	)

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}

	meter := opts.Meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	requests, err := meter.Int64Counter(
		"lookup.requests",
		metric.WithDescription("Lookups sent to the progress backend, by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create lookup.requests counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"lookup.duration",
		metric.WithDescription("Latency of lookups against the progress backend."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create lookup.duration histogram: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	return &service{
		cfg:      cfg,
		endpoint: endpoint,
		client:   oauthLocal.StaticBearerHTTPClient(context.Background(), cfg.APIKey, opts.HTTPClient),
		logger:   logger,
		tracer:   tracer,
		timeout:  timeout,
		requests: requests,
		duration: duration,
	}, nil
}

func endpointURL(baseURL, functionPath string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", errors.New("cfg.BaseURL is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse cfg.BaseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("cfg.BaseURL %q must be an absolute URL", baseURL)
	}

	if functionPath == "" {
		return u.String(), nil
	}

	return u.JoinPath(functionPath).String(), nil
}
