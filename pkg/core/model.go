package core

import "time"

type Config struct {
	Cognito     CognitoConfig
	Environment string
	Otel        OtelConfig
	Port        int
	SkipAuth    bool
	Redis       RedisConfig
	Lookup      LookupConfig
	Site        SiteConfig
}

type OtlpConfig struct {
	Endpoint string
	Insecure bool
}

type OtelConfig struct {
	OtlpExporter OtlpConfig
	// "otlp" ships over gRPC, "stdout" pretty-prints locally.
	Exporter string
	Disable  bool
}

type CognitoConfig struct {
	Region      string
	UserPoolID  string
	AppClientID string
}

type RedisConfig struct {
	// Empty disables Redis and the lookup circuit breaker.
	Addr     string
	Password string
	DB       int
}

// LookupConfig points at the remote function that returns a participant's
// progress record for an email address.
type LookupConfig struct {
	BaseURL      string
	APIKey       string
	FunctionPath string
	Timeout      time.Duration
}

type SiteConfig struct {
	Title  string
	Credit string
	// Zone the cohort reads the page in; the last-updated label is computed
	// in it regardless of the server's zone.
	Location *time.Location
}
