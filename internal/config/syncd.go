package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultMigrationsPath  = "migrations/syncd"
	defaultShutdownTimeout = 10 * time.Second

	defaultSyncInterval  = 5 * time.Minute
	defaultSyncPageLimit = 100

	defaultDBMaxOpenConns    = 25
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = 5 * time.Minute
	defaultDBPingTimeout     = 5 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

type Syncd struct {
	APIBaseURL        string
	APIToken          string
	DatabaseURL       string
	RabbitMQURL       string
	HTTPAddr          string
	MigrationsPath    string
	SyncInterval      time.Duration
	SyncPageLimit     int
	ShutdownTimeout   time.Duration
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration
	ReadHeaderTimeout time.Duration
}

func LoadSyncd() (Syncd, error) {
	cfg := Syncd{
		APIBaseURL:        getEnv("API_BASE_URL", ""),
		APIToken:          getEnv("API_TOKEN", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		SyncInterval:      defaultSyncInterval,
		SyncPageLimit:     defaultSyncPageLimit,
		ShutdownTimeout:   defaultShutdownTimeout,
		DBMaxOpenConns:    defaultDBMaxOpenConns,
		DBMaxIdleConns:    defaultDBMaxIdleConns,
		DBConnMaxLifetime: defaultDBConnMaxLifetime,
		DBPingTimeout:     defaultDBPingTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	if cfg.APIBaseURL == "" {
		return Syncd{}, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.APIToken == "" {
		return Syncd{}, fmt.Errorf("API_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		return Syncd{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		return Syncd{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return Syncd{}, fmt.Errorf("parse SYNC_INTERVAL: %w", err)
		}
		cfg.SyncInterval = interval
	}
	if raw := os.Getenv("SYNC_PAGE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Syncd{}, fmt.Errorf("SYNC_PAGE_LIMIT must be a positive integer")
		}
		cfg.SyncPageLimit = limit
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
