package config

import (
	"fmt"
	"time"
)

// ValidateForRun checks cross-field requirements that Load leaves alone.
func ValidateForRun(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimezone, cfg.Timezone)
	}

	if cfg.Storage.Driver == StoragePostgres && !cfg.WriterLock.Disabled && !cfg.Redis.Enabled() {
		return ErrWriterLockNeedsRedis
	}

	return cfg.TaskQueue.Validate()
}
