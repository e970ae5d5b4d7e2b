package config

import (
	"errors"
	"testing"
	"time"

	coreerrors "github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

// Test environment variable keys.
const (
	testEnvAppEnv        = "APP_ENV"
	testEnvPort          = "HTTP_PORT"
	testEnvResultsPath   = "RESULTS_JSON_PATH"
	testEnvUsername      = "DASHBOARD_USERNAME"
	testEnvPassword      = "DASHBOARD_PASSWORD"
	testEnvSessionSecret = "SESSION_SECRET"
	testEnvSessionTTL    = "SESSION_TTL"
	testEnvTopN          = "SOURCES_TOP_N"
)

const testErrLoad = "Load() error = %v"

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		testEnvAppEnv, testEnvPort, testEnvResultsPath, testEnvUsername,
		testEnvPassword, testEnvSessionSecret, testEnvSessionTTL, testEnvTopN,
	} {
		// t.Setenv restores the previous value after the test.
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(testEnvAppEnv, "local")
	t.Setenv(testEnvPort, "8080")
	t.Setenv(testEnvUsername, "auto2026")
	t.Setenv(testEnvPassword, "demo123")
	t.Setenv(testEnvSessionTTL, "24h")
	t.Setenv(testEnvTopN, "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if !cfg.IsLocal() {
		t.Errorf("AppEnv = %q, want local", cfg.AppEnv)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}

	if cfg.Report.Title != "Auto News Intelligence" {
		t.Errorf("Report.Title = %q", cfg.Report.Title)
	}

	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}

	if cfg.Auth.LoginRatePerMin != 10 || cfg.Auth.LoginRateBurst != 5 {
		t.Errorf("login rate = %d/%d, want 10/5", cfg.Auth.LoginRatePerMin, cfg.Auth.LoginRateBurst)
	}

	if cfg.Auth.SweepInterval != 10*time.Minute {
		t.Errorf("Auth.SweepInterval = %v, want 10m", cfg.Auth.SweepInterval)
	}

	if cfg.Auth.TrustProxyHeaders {
		t.Error("proxy headers must not be trusted by default")
	}

	if cfg.Auth.SessionSecret == "" || !cfg.Auth.GeneratedSecret {
		t.Error("expected a generated session secret")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(testEnvAppEnv, "production")
	t.Setenv(testEnvPort, "9090")
	t.Setenv(testEnvResultsPath, "/data/results.json")
	t.Setenv(testEnvUsername, "ops")
	t.Setenv(testEnvPassword, "secret")
	t.Setenv(testEnvSessionSecret, "fixed-secret")
	t.Setenv(testEnvSessionTTL, "2h")
	t.Setenv(testEnvTopN, "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf(testErrLoad, err)
	}

	if cfg.IsLocal() {
		t.Error("production must not be local")
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}

	if cfg.Report.ResultsJSONPath != "/data/results.json" {
		t.Errorf("Report.ResultsJSONPath = %q", cfg.Report.ResultsJSONPath)
	}

	if cfg.Auth.SessionSecret != "fixed-secret" || cfg.Auth.GeneratedSecret {
		t.Errorf("SessionSecret = %q, generated = %v", cfg.Auth.SessionSecret, cfg.Auth.GeneratedSecret)
	}

	if cfg.Report.SourcesTopN != 5 {
		t.Errorf("Report.SourcesTopN = %d, want 5", cfg.Report.SourcesTopN)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv(testEnvPort, "8080")
	t.Setenv(testEnvTopN, "10")
	t.Setenv(testEnvUsername, "u")
	t.Setenv(testEnvPassword, "p")
	t.Setenv(testEnvSessionTTL, "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid SESSION_TTL")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Report: ReportConfig{SourcesTopN: 10},
			Auth: AuthConfig{
				Username:        "u",
				Password:        "p",
				SessionTTL:      time.Hour,
				LoginRatePerMin: 10,
				LoginRateBurst:  5,
				SweepInterval:   time.Minute,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "top n zero", mutate: func(c *Config) { c.Report.SourcesTopN = 0 }, wantErr: true},
		{name: "empty password", mutate: func(c *Config) { c.Auth.Password = "" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, wantErr: true},
		{name: "zero sweep interval", mutate: func(c *Config) { c.Auth.SweepInterval = 0 }, wantErr: true},
		{name: "zero burst", mutate: func(c *Config) { c.Auth.LoginRateBurst = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, coreerrors.ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
