package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/openedu-labs/deptchat-core/internal/adapters/driven/ai"
	"github.com/openedu-labs/deptchat-core/internal/adapters/driven/memindex"
	"github.com/openedu-labs/deptchat-core/internal/adapters/driven/ratelimit"
	redisadapter "github.com/openedu-labs/deptchat-core/internal/adapters/driven/redis"
	"github.com/openedu-labs/deptchat-core/internal/adapters/driven/snapshot"
	"github.com/openedu-labs/deptchat-core/internal/adapters/driving/http"
	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
	"github.com/openedu-labs/deptchat-core/internal/core/services"
)

var version = "dev"

func main() {
	// .env is a development convenience; in deployment everything comes
	// from the real environment.
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	production := appEnv == "production"

	log.Printf("deptchat-core %s starting (%s)", version, appEnv)

	// Configuration from environment
	port := getEnvInt("PORT", 3000)
	apiKey := getEnv("OPENAI_API_KEY", "")
	baseURL := getEnv("OPENAI_BASE_URL", "")
	embeddingModel := getEnv("EMBEDDING_MODEL", "text-embedding-ada-002")
	chatModel := getEnv("CHAT_MODEL", "gpt-3.5-turbo")
	corpusPath := getEnv("CORPUS_PATH", "data/website_chunks.json")
	topK := getEnvInt("TOP_K", 3)
	maxTokens := getEnvInt("MAX_TOKENS", 500)
	temperature := getEnvFloat("TEMPERATURE", 0.5)
	rateLimit := getEnvInt("RATE_LIMIT", 10)
	rateWindow := time.Duration(getEnvInt("RATE_WINDOW_SEC", 60)) * time.Second
	redisURL := getEnv("REDIS_URL", "")

	ctx := context.Background()

	// ===== Load the corpus snapshot =====
	// The snapshot must be in memory before the listener starts; a chat
	// request against a half-loaded index would silently drop answers.
	log.Printf("Loading corpus snapshot from %s...", corpusPath)
	chunks, err := snapshot.Load(corpusPath)
	if err != nil {
		// Degraded mode: serve with an empty corpus and answer from the
		// no-context prompt rather than refuse to start.
		log.Printf("Warning: failed to load corpus snapshot: %v (serving with empty corpus)", err)
		chunks = nil
	}
	index := memindex.New(chunks)
	log.Printf("Corpus loaded: %d searchable chunks", index.Len())

	// ===== OpenAI providers =====
	var embedder driven.EmbeddingService
	var completer driven.CompletionService
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, chat requests will fail until configured")
		placeholder := ai.NewUnconfigured()
		embedder = placeholder
		completer = placeholder
	} else {
		embedder, err = ai.NewOpenAIEmbedding(apiKey, embeddingModel, baseURL)
		if err != nil {
			log.Fatalf("Failed to create embedding service: %v", err)
		}
		completer, err = ai.NewOpenAICompletion(apiKey, ai.CompletionConfig{
			Model:       chatModel,
			BaseURL:     baseURL,
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			log.Fatalf("Failed to create completion service: %v", err)
		}
	}
	defer embedder.Close()
	defer completer.Close()

	// ===== Rate limiter (Redis if available, otherwise in-memory) =====
	var limiter driven.RateLimiter
	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		limiter = redisadapter.NewRateLimiter(redisClient, rateLimit, rateWindow)
		log.Println("Using Redis rate limiter")
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(rateLimit, rateWindow)
		defer memLimiter.Stop()
		limiter = memLimiter
		log.Println("Using in-memory rate limiter")
	}

	// ===== Core service =====
	chatService := services.NewChatService(services.ChatServiceConfig{
		Limiter:   limiter,
		Embedder:  embedder,
		Completer: completer,
		Index:     index,
		TopK:      topK,
		Logger:    slog.Default(),
	})

	// ===== HTTP server =====
	cfg := http.Config{
		Host:           "0.0.0.0",
		Port:           port,
		Version:        version,
		Production:     production,
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		PublicDir:      getEnv("PUBLIC_DIR", "public"),
	}

	server := http.NewServer(cfg, chatService)

	log.Printf("Chat server starting on :%d (model=%s, top_k=%d, rate=%d/%s)",
		port, chatModel, topK, rateLimit, rateWindow)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
