package llm

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// chatModel adapts a langchaingo model to generator
type chatModel struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

func (m chatModel) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m.model, prompt,
		llms.WithTemperature(m.temperature),
		llms.WithMaxTokens(m.maxTokens),
	)
}

// newOpenAI builds the chat and embedding clients
// they are separate so chat can point at a provider without embeddings, such as groq
func newOpenAI(cfg Config) (embedder, generator, error) {
	chat, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ChatModel),
	)
	if err != nil {
		return nil, nil, err
	}
	embClient, err := openai.New(
		openai.WithBaseURL(cfg.EmbedBaseURL),
		openai.WithToken(cfg.EmbedAPIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, nil, err
	}
	emb, err := embeddings.NewEmbedder(embClient, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, nil, err
	}
	return emb, chatModel{model: chat, temperature: cfg.Temperature, maxTokens: cfg.MaxTokens}, nil
}
