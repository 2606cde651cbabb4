package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrUnknownStorageDriver = errors.New("STORAGE_DRIVER must be memory or postgres")
	ErrDatabaseDSNMissing   = errors.New("DATABASE_DSN is required for the postgres driver")
	ErrInvalidPoolSize      = errors.New("database pool sizes must be non-negative integers")
	ErrInvalidScheduleValue = errors.New("schedule settings must be positive integers")
	ErrInvalidWriterLockTTL = errors.New("WRITER_LOCK_TTL_SECONDS must be a positive integer")
	ErrInvalidTimezone      = errors.New("TZ_NAME must be a valid IANA time zone")
	ErrWriterLockNeedsRedis = errors.New("the writer lock requires REDIS_ADDR; set WRITER_LOCK_DISABLED=true to run without it")
)
