package config

import (
	"os"
	"strings"
	"time"

	stringsutil "minar/pkg/platform/strings"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Addr          string
	Env           string
	DatabaseURL   string
	Redis         RedisConfig
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	SweepInterval time.Duration
}

// RedisConfig holds connection settings for the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PrayerTimeCacheTTL bounds how stale a cached daily schedule may be.
var PrayerTimeCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("MINAR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("MINAR_ENV")
	if env == "" {
		env = "development"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = stringsutil.DedupeAndTrim(strings.Split(raw, ","))
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "minar.audit"
	}

	return Config{
		Addr:          addr,
		Env:           env,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis:         redisFromEnv(),
		KafkaBrokers:  brokers,
		AuditTopic:    auditTopic,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     "minar",
		JWTAudience:   "minar-api",
		TokenTTL:      durationFromEnv("TOKEN_TTL", time.Hour),
		SweepInterval: durationFromEnv("SWEEP_INTERVAL", 24*time.Hour),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
