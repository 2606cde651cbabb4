package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort     = "8080"
	defaultTimezone = "Local"
)

type Config struct {
	Port       string
	LogLevel   slog.Level
	Timezone   string
	TaskQueue  TaskQueueConfig
	Redis      *RedisConfig
	Storage    *StorageConfig
	Schedule   *ScheduleConfig
	WriterLock *WriterLockConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	// GCloudTasksEmulatorHost is only set when running against an emulator.
	GCloudTasksEmulatorHost string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	timezone := os.Getenv("TZ_NAME")
	if timezone == "" {
		timezone = defaultTimezone
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	storageConfig, err := LoadStorageConfig()
	if err != nil {
		return nil, err
	}

	scheduleConfig, err := LoadScheduleConfig()
	if err != nil {
		return nil, err
	}

	writerLockConfig, err := LoadWriterLockConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: LogLevelFromEnv(),
		Timezone: timezone,
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			GCloudTasksEmulatorHost: os.Getenv("CLOUD_TASKS_EMULATOR_HOST"),

			MaxRetries: maxRetries,
		},
		Redis:      redisConfig,
		Storage:    storageConfig,
		Schedule:   scheduleConfig,
		WriterLock: writerLockConfig,
	}, nil
}

// LogLevelFromEnv reads LOG_LEVEL, defaulting to info.
func LogLevelFromEnv() slog.Level {
	return parseLogLevel(os.Getenv("LOG_LEVEL"))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
