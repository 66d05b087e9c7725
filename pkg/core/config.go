package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultConfigEnvironment = "development"
	defaultConfigPort        = 8000
	defaultSkipAuth          = false

	defaultOtelDisable          = false
	defaultOtelExporter         = "otlp"
	defaultOTLPExporterEndpoint = "localhost:4317"
	defaultOTLPInsecure         = false

	defaultCognitoRegion      = "us-east-1"
	defaultCognitoUserPoolID  = "UNSET"
	defaultCognitoAppClientID = "UNSET"

	defaultRedisAddr     = "localhost:6379"
	defaultRedisPassword = ""
	defaultRedisDB       = 0

	defaultLookupFunctionPath = "/functions/v1/lookup-email"
	defaultLookupTimeout      = 15 * time.Second

	defaultSiteTitle    = "GCP Cohort IIITA"
	defaultSiteTimezone = "Asia/Kolkata"
)

func DefaultConfig() Config {
	return Config{
		Environment: defaultConfigEnvironment,
		Port:        defaultConfigPort,
		SkipAuth:    defaultSkipAuth,
		Otel: OtelConfig{
			Disable:  defaultOtelDisable,
			Exporter: defaultOtelExporter,
			OtlpExporter: OtlpConfig{
				Endpoint: defaultOTLPExporterEndpoint,
				Insecure: defaultOTLPInsecure,
			},
		},
		Cognito: CognitoConfig{
			Region:      defaultCognitoRegion,
			UserPoolID:  defaultCognitoUserPoolID,
			AppClientID: defaultCognitoAppClientID,
		},
		Redis: RedisConfig{
			Addr:     defaultRedisAddr,
			Password: defaultRedisPassword,
			DB:       defaultRedisDB,
		},
		Lookup: LookupConfig{
			FunctionPath: defaultLookupFunctionPath,
			Timeout:      defaultLookupTimeout,
		},
		Site: SiteConfig{
			Title:    defaultSiteTitle,
			Location: defaultSiteLocation(),
		},
	}
}

// tzdata is embedded, so the default zone always loads.
func defaultSiteLocation() *time.Location {
	loc, err := time.LoadLocation(defaultSiteTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NewConfig(options ...func(*Config)) Config {
	config := DefaultConfig()
	for _, opt := range options {
		opt(&config)
	}
	return config
}

func NewConfigFromEnv(options ...func(*Config)) (Config, error) {
	config := DefaultConfig()
	err := errors.Join(
		setFromEnv(&config.Environment, "ENVIRONMENT"),
		setFromEnv(&config.Port, "PORT"),
		setFromEnv(&config.SkipAuth, "SKIP_AUTH"),
		setFromEnv(&config.Otel.Disable, "OTEL_DISABLE"),
		setFromEnv(&config.Otel.Exporter, "OTEL_EXPORTER"),
		setFromEnv(&config.Otel.OtlpExporter.Endpoint, "OTEL_OTLP_EXPORTER_ENDPOINT"),
		setFromEnv(&config.Otel.OtlpExporter.Insecure, "OTEL_OTLP_EXPORTER_INSECURE"),
		setFromEnv(&config.Cognito.Region, "COGNITO_REGION"),
		setFromEnv(&config.Cognito.UserPoolID, "COGNITO_USER_POOL_ID"),
		setFromEnv(&config.Cognito.AppClientID, "COGNITO_APP_CLIENT_ID"),
		setFromEnv(&config.Redis.Addr, "REDIS_ADDR"),
		setFromEnv(&config.Redis.Password, "REDIS_PASSWORD"),
		setFromEnv(&config.Redis.DB, "REDIS_DB"),
		setFromEnv(&config.Lookup.BaseURL, "LOOKUP_BASE_URL"),
		setFromEnv(&config.Lookup.APIKey, "LOOKUP_API_KEY"),
		setFromEnv(&config.Lookup.FunctionPath, "LOOKUP_FUNCTION_PATH"),
		setFromEnv(&config.Lookup.Timeout, "LOOKUP_TIMEOUT"),
		setFromEnv(&config.Site.Title, "SITE_TITLE"),
		setFromEnv(&config.Site.Credit, "SITE_CREDIT"),
		setFromEnv(&config.Site.Location, "SITE_TIMEZONE"),
	)

	for _, opt := range options {
		opt(&config)
	}

	return config, err
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	var errs error

	if strings.TrimSpace(c.Lookup.BaseURL) == "" {
		errs = errors.Join(errs, errors.New("LOOKUP_BASE_URL is required"))
	}
	if strings.TrimSpace(c.Lookup.APIKey) == "" {
		errs = errors.Join(errs, errors.New("LOOKUP_API_KEY is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = errors.Join(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.Site.Location == nil {
		errs = errors.Join(errs, errors.New("SITE_TIMEZONE is required"))
	}
	switch c.Otel.Exporter {
	case "otlp", "stdout":
	default:
		errs = errors.Join(errs, fmt.Errorf("OTEL_EXPORTER %q must be otlp or stdout", c.Otel.Exporter))
	}

	return errs
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadEnv(environment ...string) error {
	filenames := []string{
		".env.local",
		".env",
	}

	env := getEnv("ENVIRONMENT", DefaultConfig().Environment)
	if len(environment) > 0 {
		env = environment[0]
	}

	if env != "" {
		file := ".env." + env + ".local"
		filenames = append([]string{file}, filenames...)
	}

	var errs error

	for _, filename := range filenames {
		err := loadEnvFile(filename)
		if err != nil {
			errs = errors.Join(
				errs,
				fmt.Errorf("error loading %s: %w", filename, err),
			)
		}
	}

	return errs
}
