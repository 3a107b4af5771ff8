// Package main is the entry point for the Artmoa API server.
// It loads configuration, connects to services, assembles the generation
// pipeline, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artmoa/internal/ai"
	"artmoa/internal/cache"
	"artmoa/internal/config"
	"artmoa/internal/curation"
	"artmoa/internal/database"
	"artmoa/internal/generation"
	"artmoa/internal/handlers"
	"artmoa/internal/router"
	"artmoa/internal/session"
	"artmoa/internal/speech"
	"artmoa/internal/storage"
	"artmoa/internal/store"
	"artmoa/internal/vision"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (session store + rate limiting).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	commentStore := store.NewCommentStore(db)
	generationStore := store.NewGenerationStore(db)

	// Connect to S3-compatible object storage. The generation pipeline
	// cannot persist images without it.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Error("s3 storage not configured — set S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY")
		os.Exit(1)
	}
	slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL, Temperature: 0.7},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL, Temperature: 0.7},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL, Temperature: 0.7},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL, Temperature: 0.7},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	imageClient := ai.NewImageClient(ai.ProviderConfig{
		APIKey:  cfg.ImageAPIKey,
		Model:   cfg.ImageModel,
		BaseURL: cfg.ImageBaseURL,
	})

	// Assemble the generation pipeline.
	pipeline := generation.NewPipeline(
		generation.NewRewriter(aiRegistry),
		imageClient,
		generation.NewArtifactStore(storageClient),
		generationStore,
		logger,
	)

	// Curation always runs; vision and speech are optional integrations.
	curationEngine := curation.NewEngine(aiRegistry, logger)

	var describer handlers.Describer
	if visionClient := vision.New(cfg.VisionEndpoint, cfg.VisionKey); visionClient != nil {
		describer = visionClient
	} else {
		slog.Warn("vision not configured — post detail captions disabled")
	}

	var synthesizer handlers.Synthesizer
	if speechClient := speech.New(cfg.SpeechEndpoint, cfg.SpeechKey, cfg.SpeechVoice); speechClient != nil {
		synthesizer = speechClient
	} else {
		slog.Warn("speech not configured — caption read-aloud disabled")
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, &router.Handlers{
		Auth:     handlers.NewAuth(sessionStore, userStore),
		Generate: handlers.NewGenerate(pipeline, generationStore),
		Posts:    handlers.NewPosts(postStore, describer, curationEngine, storageClient),
		Comments: handlers.NewComments(commentStore, postStore),
		TTS:      handlers.NewTTS(synthesizer),
	})

	// WriteTimeout must accommodate the generation pipeline, which chains a
	// chat completion, an image render, and an object storage upload.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
