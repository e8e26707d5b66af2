package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "ARTICLE_SUMMARIZER_CONFIG"

	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderCohere      = "cohere"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Model         ModelConfig        `yaml:"model"`
	Output        OutputConfig       `yaml:"output"`
	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects the slog level (error, warn, info, debug).
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetchConfig controls how article pages are downloaded and cleaned.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"userAgent"`
	Extractor    string        `yaml:"extractor"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
}

// ModelConfig describes the summarization capability and its length bounds.
// Empty Name and Endpoint select the provider defaults.
type ModelConfig struct {
	Provider      string `yaml:"provider"`
	Name          string `yaml:"name"`
	Endpoint      string `yaml:"endpoint"`
	APIKey        string `yaml:"apiKey"`
	MaxLen        int    `yaml:"maxLen"`
	MinLen        int    `yaml:"minLen"`
	MaxChunkChars int    `yaml:"maxChunkChars"`
}

// OutputConfig points at the directory receiving summary files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig groups optional mirrors of the saved summary.
type StorageConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	GCS      BucketConfig   `yaml:"gcs"`
	S3       S3Config       `yaml:"s3"`
}

// PostgresConfig describes Postgres connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// BucketConfig names an object storage bucket and key prefix.
type BucketConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// S3Config names the bucket, its region, and the key prefix.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Prefix string `yaml:"prefix"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// envOverrides lists variables that win over the YAML file. Zero values mean unset.
type envOverrides struct {
	LogLevel         string `env:"LOG_LEVEL"`
	Provider         string `env:"SUMMARY_PROVIDER"`
	Model            string `env:"SUMMARY_MODEL"`
	Endpoint         string `env:"SUMMARY_ENDPOINT"`
	HFToken          string `env:"HF_API_TOKEN"`
	OpenAIKey        string `env:"OPENAI_API_KEY"`
	AnthropicKey     string `env:"ANTHROPIC_API_KEY"`
	CohereKey        string `env:"COHERE_API_KEY"`
	MaxLen           int    `env:"SUMMARY_MAX_LEN"`
	MinLen           int    `env:"SUMMARY_MIN_LEN"`
	MaxChunkChars    int    `env:"SUMMARY_MAX_CHUNK_CHARS"`
	Extractor        string `env:"FETCH_EXTRACTOR"`
	OutputDir        string `env:"OUTPUT_DIR"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	GCSBucket        string `env:"GCS_BUCKET"`
	S3Bucket         string `env:"S3_BUCKET"`
	AWSRegion        string `env:"AWS_REGION"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("config: cannot read file, falling back to defaults", "path", path, "error", err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("config: cannot parse file, falling back to defaults", "path", path, "error", err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		slog.Warn("config: invalid environment override", "error", err)
	}
	cfg.applyEnvOverrides(overrides)

	return cfg
}

// apiKeyFor picks the provider-specific credential variable.
func (m ModelConfig) apiKeyFor(o envOverrides) string {
	switch m.Provider {
	case ProviderOpenAI:
		return o.OpenAIKey
	case ProviderAnthropic:
		return o.AnthropicKey
	case ProviderCohere:
		return o.CohereKey
	default:
		return o.HFToken
	}
}

func (c *Config) applyEnvOverrides(o envOverrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}

	if o.Provider != "" {
		c.Model.Provider = o.Provider
	}
	if o.Model != "" {
		c.Model.Name = o.Model
	}
	if o.Endpoint != "" {
		c.Model.Endpoint = o.Endpoint
	}
	// A key from the file wins over the provider variable.
	if c.Model.APIKey == "" {
		c.Model.APIKey = c.Model.apiKeyFor(o)
	}
	if o.MaxLen != 0 {
		c.Model.MaxLen = o.MaxLen
	}
	if o.MinLen != 0 {
		c.Model.MinLen = o.MinLen
	}
	if o.MaxChunkChars != 0 {
		c.Model.MaxChunkChars = o.MaxChunkChars
	}

	if o.Extractor != "" {
		c.Fetch.Extractor = o.Extractor
	}
	if o.OutputDir != "" {
		c.Output.Dir = o.OutputDir
	}

	if o.DatabaseDSN != "" {
		c.Storage.Postgres.DSN = o.DatabaseDSN
	}
	if o.GCSBucket != "" {
		c.Storage.GCS.Bucket = o.GCSBucket
	}
	if o.S3Bucket != "" {
		c.Storage.S3.Bucket = o.S3Bucket
	}
	if o.AWSRegion != "" {
		c.Storage.S3.Region = o.AWSRegion
	}

	if o.TelegramBotToken != "" {
		c.Notifications.Telegram.BotToken = o.TelegramBotToken
	}
	if o.TelegramChatID != "" {
		c.Notifications.Telegram.ChatID = o.TelegramChatID
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.Extractor != "" {
		base.Fetch.Extractor = override.Fetch.Extractor
	}
	if override.Fetch.MaxBodyBytes > 0 {
		base.Fetch.MaxBodyBytes = override.Fetch.MaxBodyBytes
	}

	if override.Model.Provider != "" {
		base.Model.Provider = override.Model.Provider
	}
	if override.Model.Name != "" {
		base.Model.Name = override.Model.Name
	}
	if override.Model.Endpoint != "" {
		base.Model.Endpoint = override.Model.Endpoint
	}
	if override.Model.APIKey != "" {
		base.Model.APIKey = override.Model.APIKey
	}
	if override.Model.MaxLen != 0 {
		base.Model.MaxLen = override.Model.MaxLen
	}
	if override.Model.MinLen != 0 {
		base.Model.MinLen = override.Model.MinLen
	}
	if override.Model.MaxChunkChars != 0 {
		base.Model.MaxChunkChars = override.Model.MaxChunkChars
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}

	if override.Storage.Postgres.DSN != "" {
		base.Storage.Postgres = override.Storage.Postgres
	}
	if override.Storage.GCS.Bucket != "" {
		base.Storage.GCS = override.Storage.GCS
	}
	if override.Storage.S3.Bucket != "" {
		base.Storage.S3 = override.Storage.S3
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetch: FetchConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "ArticleSummarizer/1.0",
			Extractor:    "paragraphs",
			MaxBodyBytes: 10 << 20,
		},
		Model: ModelConfig{
			Provider:      ProviderHuggingFace,
			MaxLen:        300,
			MinLen:        30,
			MaxChunkChars: 3500,
		},
		Output: OutputConfig{Dir: "."},
	}
}
