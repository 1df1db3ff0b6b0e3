package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
	"github.com/openedu-labs/deptchat-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService implements the ChatService interface. It composes the rate
// limiter, the two provider calls and the corpus index into one
// request/response cycle. All faults are caught here; nothing below this
// boundary crashes the process.
type chatService struct {
	limiter   driven.RateLimiter
	embedder  driven.EmbeddingService
	completer driven.CompletionService
	index     driven.SearchIndex
	topK      int
	logger    *slog.Logger
}

// ChatServiceConfig wires the chat service dependencies
type ChatServiceConfig struct {
	Limiter   driven.RateLimiter
	Embedder  driven.EmbeddingService
	Completer driven.CompletionService
	Index     driven.SearchIndex
	TopK      int
	Logger    *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(cfg ChatServiceConfig) driving.ChatService {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &chatService{
		limiter:   cfg.Limiter,
		embedder:  cfg.Embedder,
		completer: cfg.Completer,
		index:     cfg.Index,
		topK:      cfg.TopK,
		logger:    cfg.Logger,
	}
}

// Answer runs one retrieval-augmented question/answer cycle
func (s *chatService) Answer(ctx context.Context, message, clientID string) (*domain.Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}

	admitted, err := s.limiter.Allow(ctx, clientID)
	if err != nil {
		// A broken limiter backend should not take chat down with it;
		// admit and let the provider quota be the backstop.
		s.logger.Warn("rate limiter unavailable, admitting request",
			"client", clientID, "error", err)
	} else if !admitted {
		return nil, domain.ErrRateLimited
	}

	queryEmbedding, err := s.embedder.EmbedQuery(ctx, message)
	if err != nil {
		s.logger.Error("query embedding failed", "error", err)
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrUpstream, err)
	}

	// Empty corpus yields no scored chunks; the generation call still
	// happens with an explicit no-context instruction.
	scored := s.index.TopK(queryEmbedding, s.topK)
	grounding := domain.FormatContext(scored)

	result, err := s.completer.Complete(ctx, domain.SystemPrompt(grounding), message)
	if err != nil {
		s.logger.Error("completion failed", "error", err)
		return nil, fmt.Errorf("%w: generate completion: %w", domain.ErrUpstream, err)
	}

	sources := make([]domain.Source, 0, len(scored))
	for _, sc := range scored {
		sources = append(sources, domain.SourceOf(sc))
	}

	return &domain.Answer{
		Response: result.Text,
		Sources:  sources,
		Usage:    result.Usage,
	}, nil
}
