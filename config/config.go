package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HttpPort string

	// S3/MinIO
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketRegion    string
	UseSSL          bool
	PendingBucket   string
	ProcessedBucket string
	SignedURLTTL    time.Duration

	// Redis
	RedisURL      string
	RedisPassword string
	ArrivalQueue  string

	// Postgres
	Host     string
	User     string
	Password string
	DBName   string
	Port     string

	// Document AI
	ExtractionEndpoint string
	ExtractionAPIKey   string
	ExtractionModelID  string
	ExtractionPollWait time.Duration

	// upload/read limits
	MaxFileSize     int64
	DefaultPageSize int
	MaxPageSize     int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HttpPort:           getEnv("PORT", "3000"),
		BucketEndpoint:     os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:     os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
		BucketRegion:       os.Getenv("BUCKET_REGION"),
		UseSSL:             os.Getenv("BUCKET_USE_SSL") == "true",
		PendingBucket:      getEnv("PENDING_BUCKET", "documents-pending"),
		ProcessedBucket:    getEnv("PROCESSED_BUCKET", "documents-processed"),
		SignedURLTTL:       getDuration("SIGNED_URL_TTL", "60m"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		ArrivalQueue:       getEnv("ARRIVAL_QUEUE", "documents:pending"),
		Host:               os.Getenv("PG_HOST"),
		User:               os.Getenv("PG_USER"),
		Password:           os.Getenv("PG_PASSWORD"),
		DBName:             os.Getenv("PG_DB"),
		Port:               getEnv("PG_PORT", "5432"),
		ExtractionEndpoint: os.Getenv("DOCUMENT_AI_ENDPOINT"),
		ExtractionAPIKey:   os.Getenv("DOCUMENT_AI_KEY"),
		ExtractionModelID:  getEnv("DOCUMENT_AI_MODEL", "prebuilt-document"),
		ExtractionPollWait: getDuration("DOCUMENT_AI_POLL_INTERVAL", "2s"),
		MaxFileSize:        getInt64("MAX_FILE_SIZE", 50*1024*1024),
		DefaultPageSize:    getInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:        getInt("MAX_PAGE_SIZE", 100),
	}

	if cfg.BucketAccessID == "" || cfg.BucketAccessKey == "" {
		return nil, fmt.Errorf("BUCKET_ACCESS_ID and BUCKET_ACCESS_KEY must be set")
	}
	if cfg.PendingBucket == cfg.ProcessedBucket {
		return nil, fmt.Errorf("PENDING_BUCKET and PROCESSED_BUCKET must differ")
	}
	if cfg.SignedURLTTL <= 0 {
		return nil, fmt.Errorf("SIGNED_URL_TTL must be positive")
	}
	if cfg.DefaultPageSize <= 0 {
		return nil, fmt.Errorf("DEFAULT_PAGE_SIZE must be positive")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("MAX_PAGE_SIZE cannot be below DEFAULT_PAGE_SIZE")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
