package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overrideVars = []string{
	configPathEnv, "LOG_LEVEL", "SUMMARY_PROVIDER", "SUMMARY_MODEL", "SUMMARY_ENDPOINT",
	"HF_API_TOKEN", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "COHERE_API_KEY",
	"SUMMARY_MAX_LEN", "SUMMARY_MIN_LEN", "SUMMARY_MAX_CHUNK_CHARS", "FETCH_EXTRACTOR",
	"OUTPUT_DIR", "DATABASE_DSN", "GCS_BUCKET", "S3_BUCKET", "AWS_REGION",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
}

// clearEnv isolates Load from the developer's environment and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, name := range overrideVars {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "paragraphs", cfg.Fetch.Extractor)
	assert.Equal(t, int64(10<<20), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, ProviderHuggingFace, cfg.Model.Provider)
	assert.Equal(t, 300, cfg.Model.MaxLen)
	assert.Equal(t, 30, cfg.Model.MinLen)
	assert.Equal(t, 3500, cfg.Model.MaxChunkChars)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Empty(t, cfg.Storage.Postgres.DSN)
}

func TestLoadMergesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
fetch:
  timeout: 3s
  extractor: readability
model:
  provider: openai
  name: gpt-4.1-mini
  maxChunkChars: 2000
storage:
  gcs:
    bucket: summaries
    prefix: daily/
`), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "readability", cfg.Fetch.Extractor)
	assert.Equal(t, "ArticleSummarizer/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, ProviderOpenAI, cfg.Model.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.Model.Name)
	assert.Equal(t, 2000, cfg.Model.MaxChunkChars)
	assert.Equal(t, 300, cfg.Model.MaxLen)
	assert.Equal(t, BucketConfig{Bucket: "summaries", Prefix: "daily/"}, cfg.Storage.GCS)
}

func TestLoadBadFileFallsBackToDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0o600))
	t.Setenv(configPathEnv, path)

	assert.Equal(t, defaultConfig(), Load())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SUMMARY_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("SUMMARY_MAX_CHUNK_CHARS", "1200")
	t.Setenv("OUTPUT_DIR", "/tmp/summaries")
	t.Setenv("DATABASE_DSN", "postgres://localhost/summaries")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")

	cfg := Load()

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, ProviderAnthropic, cfg.Model.Provider)
	assert.Equal(t, "sk-ant", cfg.Model.APIKey)
	assert.Equal(t, 1200, cfg.Model.MaxChunkChars)
	assert.Equal(t, "/tmp/summaries", cfg.Output.Dir)
	assert.Equal(t, "postgres://localhost/summaries", cfg.Storage.Postgres.DSN)
	assert.Equal(t, TelegramConfig{BotToken: "123:abc", ChatID: "-100"}, cfg.Notifications.Telegram)
}

func TestLoadFileKeyWinsOverProviderVariable(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  apiKey: from-file\n"), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv("HF_API_TOKEN", "from-env")

	assert.Equal(t, "from-file", Load().Model.APIKey)
}

func TestLoadInvalidNumberKeepsDefault(t *testing.T) {
	clearEnv(t)

	t.Setenv("SUMMARY_MAX_LEN", "lots")

	assert.Equal(t, 300, Load().Model.MaxLen)
}
