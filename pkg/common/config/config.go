package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerHost     string
	IngestionPort  string
	AnalyticsPort  string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers      []string
	KafkaGroupID      string
	MentionBatchTopic string
	MentionDLQTopic   string

	// Analytics
	MaxPivotRows  int
	PivotCacheTTL time.Duration

	// Static data overrides; empty means compiled-in defaults
	TaxonomyPath  string
	FieldMapPath  string
	RedactionPath string

	// Ingestion
	AllowedSources []string
	NoteTextFields []string
	MaxBatchRows   int
	BatchStatusTTL time.Duration
}

func Load() *Config {
	return &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		IngestionPort:  getEnv("INGESTION_PORT", "8081"),
		AnalyticsPort:  getEnv("ANALYTICS_PORT", "8082"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 8*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "carelens"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "carelens123"),
		PostgresDB:       getEnv("POSTGRES_DB", "carelens"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:      getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:      getEnv("KAFKA_GROUP_ID", "carelens-platform"),
		MentionBatchTopic: getEnv("MENTION_BATCH_TOPIC", "mention-batches"),
		MentionDLQTopic:   getEnv("MENTION_DLQ_TOPIC", ""),

		MaxPivotRows:  getIntEnv("MAX_PIVOT_ROWS", 500),
		PivotCacheTTL: getDuration("PIVOT_CACHE_TTL", time.Minute),

		TaxonomyPath:  getEnv("TAXONOMY_PATH", ""),
		FieldMapPath:  getEnv("FIELD_MAP_PATH", ""),
		RedactionPath: getEnv("REDACTION_RULES_PATH", ""),

		AllowedSources: getStringSliceEnv("ALLOWED_SOURCES", nil),
		NoteTextFields: getStringSliceEnv("NOTE_TEXT_FIELDS", []string{"note_text", "note", "narrative"}),
		MaxBatchRows:   getIntEnv("MAX_BATCH_ROWS", 10000),
		BatchStatusTTL: getDuration("BATCH_STATUS_TTL", 720*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
