package config

import (
	"os"
	"strconv"
	"time"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
)

const (
	storageDriverEnv   = "STORAGE_DRIVER"
	databaseDSNEnv     = "DATABASE_DSN"
	dbMaxOpenConnsEnv  = "DATABASE_MAX_OPEN_CONNS"
	dbMaxIdleConnsEnv  = "DATABASE_MAX_IDLE_CONNS"
	dbConnMaxIdleEnv   = "DATABASE_CONN_MAX_IDLE_SECONDS"
	dbConnMaxLifeEnv   = "DATABASE_CONN_MAX_LIFETIME_SECONDS"
	defaultMaxOpenConn = 10
	defaultMaxIdleConn = 5
	defaultConnMaxIdle = 5 * time.Minute
	defaultConnMaxLife = 30 * time.Minute
)

type StorageConfig struct {
	Driver          StorageDriver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

func LoadStorageConfig() (*StorageConfig, error) {
	driver := StorageDriver(os.Getenv(storageDriverEnv))
	if driver == "" {
		driver = StorageMemory
	}

	maxOpen, err := nonNegativeEnv(dbMaxOpenConnsEnv, defaultMaxOpenConn, ErrInvalidPoolSize)
	if err != nil {
		return nil, err
	}
	maxIdle, err := nonNegativeEnv(dbMaxIdleConnsEnv, defaultMaxIdleConn, ErrInvalidPoolSize)
	if err != nil {
		return nil, err
	}
	idleSeconds, err := nonNegativeEnv(dbConnMaxIdleEnv, int(defaultConnMaxIdle/time.Second), ErrInvalidPoolSize)
	if err != nil {
		return nil, err
	}
	lifeSeconds, err := nonNegativeEnv(dbConnMaxLifeEnv, int(defaultConnMaxLife/time.Second), ErrInvalidPoolSize)
	if err != nil {
		return nil, err
	}

	cfg := &StorageConfig{
		Driver:          driver,
		DSN:             os.Getenv(databaseDSNEnv),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxIdleTime: time.Duration(idleSeconds) * time.Second,
		ConnMaxLifetime: time.Duration(lifeSeconds) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageMemory:
		return nil
	case StoragePostgres:
		if c.DSN == "" {
			return ErrDatabaseDSNMissing
		}
		return nil
	default:
		return ErrUnknownStorageDriver
	}
}

func nonNegativeEnv(key string, fallback int, invalid error) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0, invalid
	}
	return parsed, nil
}
