// Package llm is the language model capability the search and entries services consume:
// embeddings, text generation and date filter extraction over any OpenAI compatible
// endpoint through langchaingo, with an offline hashed embedder for development
package llm

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/core/dates"
	"inkwell/internal/core/similarity"
	"inkwell/internal/platform/config"
)

var (
	// ErrEmbeddingUnavailable wraps every embedding failure, timeouts included
	ErrEmbeddingUnavailable = errors.New("llm: embedding unavailable")
	// ErrGenerationUnavailable wraps every generation failure, timeouts included
	ErrGenerationUnavailable = errors.New("llm: generation unavailable")
)

// Capabilities is injected into services, never held globally
type Capabilities interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, prompt string) (string, error)
	// ExtractDateFilter never fails, it degrades to dates.NoFilter()
	ExtractDateFilter(ctx context.Context, query string) dates.Filter
	// Dimension is the fixed embedding width
	Dimension() int
}

// Config is read from INKWELL_LLM_*
type Config struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	Temperature    float64
	MaxTokens      int
	EmbedBaseURL   string
	EmbedAPIKey    string
	EmbeddingModel string
	Dimension      int
	Timeout        time.Duration
	RatePerSec     float64
	Burst          int
	CacheTTL       time.Duration
	Offline        bool
}

// ConfigFrom reads the LLM settings, embed endpoint values default to the chat ones
func ConfigFrom(root config.Conf) Config {
	c := root.Prefix("INKWELL_LLM_")
	cfg := Config{
		BaseURL:        c.MayString("BASE_URL", "https://api.openai.com/v1"),
		APIKey:         c.MayString("API_KEY", ""),
		ChatModel:      c.MayString("CHAT_MODEL", "gpt-4o-mini"),
		Temperature:    c.MayFloat64("TEMPERATURE", 0.7),
		MaxTokens:      c.MayInt("MAX_TOKENS", 1000),
		EmbeddingModel: c.MayString("EMBEDDING_MODEL", "text-embedding-3-small"),
		Dimension:      c.MayInt("DIMENSION", similarity.DefaultDimension),
		Timeout:        c.MayDuration("TIMEOUT", 20*time.Second),
		RatePerSec:     c.MayFloat64("RATE", 5),
		Burst:          c.MayInt("BURST", 10),
		CacheTTL:       c.MayDuration("CACHE_TTL", 7*24*time.Hour),
		Offline:        c.MayBool("OFFLINE", false),
	}
	cfg.EmbedBaseURL = c.MayString("EMBED_BASE_URL", cfg.BaseURL)
	cfg.EmbedAPIKey = c.MayString("EMBED_API_KEY", cfg.APIKey)
	return cfg
}
