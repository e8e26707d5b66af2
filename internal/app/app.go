package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"ArticleSummarizer/internal/config"
	"ArticleSummarizer/internal/extractor"
	"ArticleSummarizer/internal/infrastructure/llm"
	"ArticleSummarizer/internal/infrastructure/ml"
	"ArticleSummarizer/internal/infrastructure/parser"
	"ArticleSummarizer/internal/infrastructure/storage"
	"ArticleSummarizer/internal/infrastructure/telegram"
	"ArticleSummarizer/internal/logging"
	"ArticleSummarizer/internal/ports"
	"ArticleSummarizer/internal/summarizer"
	"ArticleSummarizer/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
	closers  []io.Closer
}

// New builds a runnable application instance. Optional publishers that cannot
// be initialized are logged and skipped.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, nil)
	}

	registry := extractor.NewRegistry(parser.NewParagraphExtractor(), parser.NewReadabilityExtractor())
	ext, err := registry.Resolve(cfg.Fetch.Extractor)
	if err != nil {
		return nil, fmt.Errorf("resolve extractor: %w", err)
	}

	source := parser.NewHTTPSource(
		&http.Client{Timeout: cfg.Fetch.Timeout},
		ext,
		parser.SourceOptions{UserAgent: cfg.Fetch.UserAgent, MaxBodyBytes: cfg.Fetch.MaxBodyBytes},
		baseLogger.With("component", "source"),
	)

	capability, modelName, err := newCapability(cfg.Model)
	if err != nil {
		return nil, err
	}

	chunked := summarizer.New(capability, summarizer.Options{
		MaxLen:        cfg.Model.MaxLen,
		MinLen:        cfg.Model.MinLen,
		MaxChunkChars: cfg.Model.MaxChunkChars,
	}, baseLogger.With("component", "summarizer"))

	application := &Application{cfg: cfg, logger: baseLogger}
	publishers := application.buildPublishers(ctx, baseLogger.With("component", "publisher"))

	application.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Summarizer: chunked,
		Writer:     storage.NewFileWriter(cfg.Output.Dir),
		Publishers: publishers,
		Model:      modelName,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	baseLogger.Debug("application ready",
		"provider", cfg.Model.Provider,
		"model", modelName,
		"extractor", ext.Name(),
		"publishers", len(publishers),
	)
	return application, nil
}

func newCapability(cfg config.ModelConfig) (ports.Capability, string, error) {
	switch cfg.Provider {
	case "", config.ProviderHuggingFace:
		client := ml.NewClient(cfg.Endpoint, cfg.Name, cfg.APIKey)
		return client, client.Model(), nil
	case config.ProviderOpenAI:
		client := llm.NewOpenAI(cfg.APIKey, cfg.Name)
		return client, client.Model(), nil
	case config.ProviderAnthropic:
		client := llm.NewAnthropic(cfg.APIKey, cfg.Name)
		return client, client.Model(), nil
	case config.ProviderCohere:
		client := llm.NewCohere(cfg.APIKey, cfg.Name)
		return client, client.Model(), nil
	default:
		return nil, "", fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func (a *Application) buildPublishers(ctx context.Context, log *slog.Logger) []ports.Publisher {
	var publishers []ports.Publisher

	if dsn := a.cfg.Storage.Postgres.DSN; dsn != "" {
		if repo, err := openPostgres(ctx, dsn); err != nil {
			log.Warn("postgres publisher disabled", "error", err)
		} else {
			publishers = append(publishers, repo)
			a.closers = append(a.closers, repo)
		}
	}

	if gcsCfg := a.cfg.Storage.GCS; gcsCfg.Bucket != "" {
		if pub, err := storage.NewGCSPublisher(ctx, gcsCfg.Bucket, gcsCfg.Prefix); err != nil {
			log.Warn("gcs publisher disabled", "error", err)
		} else {
			publishers = append(publishers, pub)
			a.closers = append(a.closers, pub)
		}
	}

	if s3Cfg := a.cfg.Storage.S3; s3Cfg.Bucket != "" {
		if pub, err := storage.NewS3Publisher(ctx, s3Cfg.Bucket, s3Cfg.Region, s3Cfg.Prefix); err != nil {
			log.Warn("s3 publisher disabled", "error", err)
		} else {
			publishers = append(publishers, pub)
		}
	}

	if tg := a.cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		publishers = append(publishers, telegram.NewNotifier(tg.BotToken, tg.ChatID))
	}

	return publishers
}

func openPostgres(ctx context.Context, dsn string) (*storage.PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// Run prompts for a URL on in, summarizes the article, and reports on out.
// A failed fetch is reported to the user and is not an error.
func (a *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if a.pipeline == nil {
		return nil
	}

	console := newConsole(in, out)
	url, err := console.promptURL()
	if err != nil {
		return fmt.Errorf("read url: %w", err)
	}

	res, err := a.pipeline.Run(ctx, url)
	if errors.Is(err, usecase.ErrNoArticleText) {
		console.fetchFailed()
		return nil
	}
	if err != nil {
		return err
	}

	console.showSummary(res.Saved.Text, res.Saved.Path)
	return nil
}

// Close releases publisher resources.
func (a *Application) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
