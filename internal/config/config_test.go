package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if cfg.App.HTTPPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.App.HTTPPort)
	}
	if cfg.Database.DBHost != "localhost" || cfg.Database.DBSSLMode != "disable" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.JWT.Secret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.JWT.Secret)
	}
	if cfg.JWT.Issuer != "mentor-mentee-app" || cfg.JWT.Audience != "mentor-mentee-users" {
		t.Fatalf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.JWT.ExpiresIn != time.Hour {
		t.Fatalf("unexpected expiry %v", cfg.JWT.ExpiresIn)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing env error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("DB_POOL_MAX_CONNS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "9090" {
		t.Fatalf("unexpected port %q", cfg.App.HTTPPort)
	}
	if cfg.JWT.ExpiresIn != 30*time.Minute {
		t.Fatalf("unexpected expiry %v", cfg.JWT.ExpiresIn)
	}
	if cfg.Database.PoolMaxConns != 12 {
		t.Fatalf("unexpected pool size %d", cfg.Database.PoolMaxConns)
	}
}

func TestDurationEnv_Invalid(t *testing.T) {
	t.Setenv("X_DUR", "not-a-duration")
	if got := durationEnv("X_DUR", 5*time.Second); got != 5*time.Second {
		t.Fatalf("invalid value must fall back, got %v", got)
	}

	t.Setenv("X_DUR", "-1s")
	if got := durationEnv("X_DUR", time.Second); got != time.Second {
		t.Fatalf("negative value must fall back, got %v", got)
	}
}
