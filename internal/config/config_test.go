package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("WRITE_RATE_LIMIT", "")

	cfg := Load()

	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.StoreBackend != StoreSQL {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreSQL)
	}
	if cfg.WriteRateLimit != 120 {
		t.Errorf("WriteRateLimit = %d, want 120", cfg.WriteRateLimit)
	}
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("READMATE_TEST_INT", "many")
	t.Setenv("READMATE_TEST_DURATION", "soon")

	if got := envInt("READMATE_TEST_INT", 7); got != 7 {
		t.Errorf("envInt = %d, want 7", got)
	}
	if got := envDuration("READMATE_TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("envDuration = %v, want 1s", got)
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"", time.Local.String()},
		{"Local", time.Local.String()},
		{"UTC", "UTC"},
		{"Not/AZone", time.Local.String()},
	}

	for _, tt := range tests {
		cfg := &Config{Timezone: tt.tz}
		if got := cfg.Location().String(); got != tt.want {
			t.Errorf("Location(%q) = %q, want %q", tt.tz, got, tt.want)
		}
	}
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{AppName: "Readmate", S3SecretKey: "secret", SentryDSN: "dsn"}

	safe := cfg.Sanitized()

	if safe.S3SecretKey != "" || safe.SentryDSN != "" {
		t.Errorf("Sanitized leaked secrets: %+v", safe)
	}
	if safe.AppName != "Readmate" {
		t.Errorf("AppName = %q", safe.AppName)
	}
}
