package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Schedule ScheduleConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ScheduleConfig locates the official schedule document and tunes view
// caching.
type ScheduleConfig struct {
	DocumentPath string
	ViewCacheTTL time.Duration
	CacheEnabled bool
}

// JobsConfig drives the periodic background work: the minute clock tick
// feeding live status, the lesson reminder check and the monthly sweep of
// stale completed tasks.
type JobsConfig struct {
	ClockTickInterval time.Duration
	ReminderEnabled   bool
	ReminderWindow    time.Duration
	ReminderWebhook   string
	CleanupSchedule   string
	WorkerConcurrency int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Schedule = ScheduleConfig{
		DocumentPath: v.GetString("SCHEDULE_DOCUMENT_PATH"),
		ViewCacheTTL: parseDuration(v.GetString("SCHEDULE_VIEW_CACHE_TTL"), 5*time.Minute),
		CacheEnabled: v.GetBool("SCHEDULE_VIEW_CACHE_ENABLED"),
	}

	cfg.Jobs = JobsConfig{
		ClockTickInterval: parseDuration(v.GetString("CLOCK_TICK_INTERVAL"), 20*time.Second),
		ReminderEnabled:   v.GetBool("ENABLE_LESSON_REMINDERS"),
		ReminderWindow:    parseDuration(v.GetString("LESSON_REMINDER_WINDOW"), 10*time.Minute),
		ReminderWebhook:   v.GetString("LESSON_REMINDER_WEBHOOK"),
		CleanupSchedule:   v.GetString("TASK_CLEANUP_SCHEDULE"),
		WorkerConcurrency: v.GetInt("JOB_WORKER_CONCURRENCY"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "studify")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULE_DOCUMENT_PATH", "./schedule.json")
	v.SetDefault("SCHEDULE_VIEW_CACHE_TTL", "5m")
	v.SetDefault("SCHEDULE_VIEW_CACHE_ENABLED", false)

	v.SetDefault("CLOCK_TICK_INTERVAL", "20s")
	v.SetDefault("ENABLE_LESSON_REMINDERS", false)
	v.SetDefault("LESSON_REMINDER_WINDOW", "10m")
	v.SetDefault("LESSON_REMINDER_WEBHOOK", "")
	// First run of every day; the sweep itself decides what is stale.
	v.SetDefault("TASK_CLEANUP_SCHEDULE", "0 3 * * *")
	v.SetDefault("JOB_WORKER_CONCURRENCY", 1)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
