package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"doc_processing_backend/config"
)

func setRequired(t *testing.T) {
	t.Setenv("BUCKET_ACCESS_ID", "access")
	t.Setenv("BUCKET_ACCESS_KEY", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("PENDING_BUCKET", "")
	t.Setenv("PROCESSED_BUCKET", "")
	t.Setenv("SIGNED_URL_TTL", "")
	t.Setenv("DOCUMENT_AI_MODEL", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.HttpPort)
	require.Equal(t, "documents-pending", cfg.PendingBucket)
	require.Equal(t, "documents-processed", cfg.ProcessedBucket)
	require.Equal(t, 60*time.Minute, cfg.SignedURLTTL)
	require.Equal(t, "prebuilt-document", cfg.ExtractionModelID)
	require.Equal(t, 2*time.Second, cfg.ExtractionPollWait)
	require.Equal(t, int64(50*1024*1024), cfg.MaxFileSize)
	require.Equal(t, 20, cfg.DefaultPageSize)
	require.Equal(t, 100, cfg.MaxPageSize)
	require.Equal(t, "documents:pending", cfg.ArrivalQueue)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PENDING_BUCKET", "inbox")
	t.Setenv("PROCESSED_BUCKET", "done")
	t.Setenv("SIGNED_URL_TTL", "30m")
	t.Setenv("DOCUMENT_AI_ENDPOINT", "https://docai.example.com")
	t.Setenv("DOCUMENT_AI_MODEL", "custom-model")
	t.Setenv("DOCUMENT_AI_POLL_INTERVAL", "500ms")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("DEFAULT_PAGE_SIZE", "10")
	t.Setenv("MAX_PAGE_SIZE", "50")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HttpPort)
	require.Equal(t, "inbox", cfg.PendingBucket)
	require.Equal(t, "done", cfg.ProcessedBucket)
	require.Equal(t, 30*time.Minute, cfg.SignedURLTTL)
	require.Equal(t, "https://docai.example.com", cfg.ExtractionEndpoint)
	require.Equal(t, "custom-model", cfg.ExtractionModelID)
	require.Equal(t, 500*time.Millisecond, cfg.ExtractionPollWait)
	require.Equal(t, int64(1048576), cfg.MaxFileSize)
	require.Equal(t, 10, cfg.DefaultPageSize)
	require.Equal(t, 50, cfg.MaxPageSize)
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	t.Setenv("BUCKET_ACCESS_ID", "")
	t.Setenv("BUCKET_ACCESS_KEY", "")

	_, err := config.LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsSharedBucket(t *testing.T) {
	setRequired(t)
	t.Setenv("PENDING_BUCKET", "documents")
	t.Setenv("PROCESSED_BUCKET", "documents")

	_, err := config.LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("SIGNED_URL_TTL", "not-a-duration")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 60*time.Minute, cfg.SignedURLTTL)
}
