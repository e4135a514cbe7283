package config

import (
	"os"
	"testing"
	"time"
)

func validSyncdEnv() map[string]string {
	return map[string]string{
		"API_BASE_URL": "https://api.example.com",
		"API_TOKEN":    "secret",
		"DATABASE_URL": "postgres://localhost/db",
		"RABBITMQ_URL": "amqp://localhost",
	}
}

func TestLoadSyncd(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env map[string]string)
		wantErr string
	}{
		{
			name:    "missing API_BASE_URL",
			mutate:  func(env map[string]string) { delete(env, "API_BASE_URL") },
			wantErr: "API_BASE_URL is required",
		},
		{
			name:    "missing API_TOKEN",
			mutate:  func(env map[string]string) { delete(env, "API_TOKEN") },
			wantErr: "API_TOKEN is required",
		},
		{
			name:    "missing DATABASE_URL",
			mutate:  func(env map[string]string) { delete(env, "DATABASE_URL") },
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing RABBITMQ_URL",
			mutate:  func(env map[string]string) { delete(env, "RABBITMQ_URL") },
			wantErr: "RABBITMQ_URL is required",
		},
		{
			name:   "valid config with defaults",
			mutate: func(map[string]string) {},
		},
		{
			name:   "custom HTTP_ADDR overrides default",
			mutate: func(env map[string]string) { env["HTTP_ADDR"] = ":9090" },
		},
		{
			name:   "custom SYNC_INTERVAL",
			mutate: func(env map[string]string) { env["SYNC_INTERVAL"] = "30s" },
		},
		{
			name:    "invalid SYNC_INTERVAL",
			mutate:  func(env map[string]string) { env["SYNC_INTERVAL"] = "soon" },
			wantErr: "parse SYNC_INTERVAL",
		},
		{
			name:    "invalid SYNC_PAGE_LIMIT",
			mutate:  func(env map[string]string) { env["SYNC_PAGE_LIMIT"] = "-5" },
			wantErr: "SYNC_PAGE_LIMIT must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			env := validSyncdEnv()
			tt.mutate(env)
			for k, v := range env {
				t.Setenv(k, v)
			}

			cfg, err := LoadSyncd()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.APIBaseURL != env["API_BASE_URL"] {
				t.Fatalf("want APIBaseURL %q, got %q", env["API_BASE_URL"], cfg.APIBaseURL)
			}
			if addr, ok := env["HTTP_ADDR"]; ok && cfg.HTTPAddr != addr {
				t.Fatalf("want HTTPAddr %q, got %q", addr, cfg.HTTPAddr)
			}
			if _, ok := env["HTTP_ADDR"]; !ok && cfg.HTTPAddr != defaultHTTPAddr {
				t.Fatalf("want default HTTPAddr %q, got %q", defaultHTTPAddr, cfg.HTTPAddr)
			}
			if raw, ok := env["SYNC_INTERVAL"]; ok {
				want, _ := time.ParseDuration(raw)
				if cfg.SyncInterval != want {
					t.Fatalf("want SyncInterval %v, got %v", want, cfg.SyncInterval)
				}
			} else if cfg.SyncInterval != defaultSyncInterval {
				t.Fatalf("want default SyncInterval %v, got %v", defaultSyncInterval, cfg.SyncInterval)
			}
			if cfg.SyncPageLimit != defaultSyncPageLimit {
				t.Fatalf("want SyncPageLimit %d, got %d", defaultSyncPageLimit, cfg.SyncPageLimit)
			}
			if cfg.DBMaxOpenConns != defaultDBMaxOpenConns {
				t.Fatalf("want DBMaxOpenConns %d, got %d", defaultDBMaxOpenConns, cfg.DBMaxOpenConns)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func TestLoadNotifications(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing RABBITMQ_URL",
			env:     map[string]string{},
			wantErr: "RABBITMQ_URL is required",
		},
		{
			name: "valid config",
			env:  map[string]string{"RABBITMQ_URL": "amqp://localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadNotifications()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.RabbitMQURL != tt.env["RABBITMQ_URL"] {
				t.Fatalf("want RabbitMQURL %q, got %q", tt.env["RABBITMQ_URL"], cfg.RabbitMQURL)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"API_BASE_URL", "API_TOKEN", "DATABASE_URL", "RABBITMQ_URL",
		"HTTP_ADDR", "MIGRATIONS_PATH", "SYNC_INTERVAL", "SYNC_PAGE_LIMIT",
	}
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok {
			t.Setenv(key, val)
		}
		os.Unsetenv(key)
	}
}
