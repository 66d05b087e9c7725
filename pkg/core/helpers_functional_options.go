package core

import "time"

func WithRedisAddr(addr string) func(*Config) {
	return func(c *Config) {
		c.Redis.Addr = addr
	}
}

func WithRedisPassword(pw string) func(*Config) {
	return func(c *Config) {
		c.Redis.Password = pw
	}
}

func WithRedisDB(db int) func(*Config) {
	return func(c *Config) {
		c.Redis.DB = db
	}
}

func WithEnvironment(environment string) func(*Config) {
	return func(c *Config) {
		c.Environment = environment
	}
}

func WithPort(port int) func(*Config) {
	return func(c *Config) {
		c.Port = port
	}
}

func WithSkipAuth(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.SkipAuth = val
	}
}

func WithOtlpEndpoint(endpoint string) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Endpoint = endpoint
	}
}

func WithOtlpInsecure(insecure bool) func(*Config) {
	return func(c *Config) {
		c.Otel.OtlpExporter.Insecure = insecure
	}
}

func WithOtelExporter(exporter string) func(*Config) {
	return func(c *Config) {
		c.Otel.Exporter = exporter
	}
}

func WithOtelDisable(value ...bool) func(*Config) {
	val := true
	if len(value) > 0 {
		val = value[0]
	}

	return func(c *Config) {
		c.Otel.Disable = val
	}
}

func WithCognitoRegion(region string) func(*Config) {
	return func(c *Config) {
		c.Cognito.Region = region
	}
}

func WithCognitoUserPoolID(userPoolID string) func(*Config) {
	return func(c *Config) {
		c.Cognito.UserPoolID = userPoolID
	}
}

func WithCognitoAppClientID(appClientID string) func(*Config) {
	return func(c *Config) {
		c.Cognito.AppClientID = appClientID
	}
}

func WithLookupBaseURL(baseURL string) func(*Config) {
	return func(c *Config) {
		c.Lookup.BaseURL = baseURL
	}
}

func WithLookupAPIKey(key string) func(*Config) {
	return func(c *Config) {
		c.Lookup.APIKey = key
	}
}

func WithLookupFunctionPath(path string) func(*Config) {
	return func(c *Config) {
		c.Lookup.FunctionPath = path
	}
}

func WithLookupTimeout(timeout time.Duration) func(*Config) {
	return func(c *Config) {
		c.Lookup.Timeout = timeout
	}
}

func WithSiteTitle(title string) func(*Config) {
	return func(c *Config) {
		c.Site.Title = title
	}
}

func WithSiteCredit(credit string) func(*Config) {
	return func(c *Config) {
		c.Site.Credit = credit
	}
}

func WithSiteLocation(loc *time.Location) func(*Config) {
	return func(c *Config) {
		c.Site.Location = loc
	}
}
