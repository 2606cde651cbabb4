package config

import (
	"os"
	"strconv"
	"time"
)

const (
	writerLockDisabledEnv = "WRITER_LOCK_DISABLED"
	writerLockTTLEnv      = "WRITER_LOCK_TTL_SECONDS"
	defaultWriterLockTTL  = 30 * time.Second
)

type WriterLockConfig struct {
	Disabled bool
	TTL      time.Duration
}

func LoadWriterLockConfig() (*WriterLockConfig, error) {
	ttl := defaultWriterLockTTL
	if v := os.Getenv(writerLockTTLEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidWriterLockTTL
		}
		ttl = time.Duration(parsed) * time.Second
	}

	return &WriterLockConfig{
		Disabled: os.Getenv(writerLockDisabledEnv) == "true",
		TTL:      ttl,
	}, nil
}
