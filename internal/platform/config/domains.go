package config

import "time"

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port              int           `env:"HTTP_PORT" envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ReportConfig holds report discovery and presentation settings.
type ReportConfig struct {
	ResultsJSONPath string `env:"RESULTS_JSON_PATH"`
	Title           string `env:"DASHBOARD_TITLE" envDefault:"Auto News Intelligence"`
	SourcesTopN     int    `env:"SOURCES_TOP_N" envDefault:"10"`
}

// AuthConfig holds login gate and session settings.
type AuthConfig struct {
	Username        string        `env:"DASHBOARD_USERNAME" envDefault:"auto2026"`
	Password        string        `env:"DASHBOARD_PASSWORD" envDefault:"demo123"`
	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	LoginRatePerMin int           `env:"LOGIN_RATE_LIMIT_PER_MIN" envDefault:"10"`
	LoginRateBurst  int           `env:"LOGIN_RATE_LIMIT_BURST" envDefault:"5"`
	SweepInterval   time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`

	// TrustProxyHeaders keys the login limiter on X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// GeneratedSecret is set when SessionSecret was generated at startup.
	GeneratedSecret bool
}
