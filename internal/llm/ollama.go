package llm

import (
	"context"
	"fmt"
	"time"

	"crm_assistant_backend/internal/util"
	"crm_assistant_backend/pkg/monitoring"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient serves local models. The model name varies per call, so the
// langchaingo handle is built per invocation; it only wraps an HTTP client
// and is cheap to construct.
type OllamaClient struct {
	serverURL string
}

func NewOllamaClient(serverURL string) *OllamaClient {
	return &OllamaClient{serverURL: serverURL}
}

func (c *OllamaClient) newModel(model string) (*ollama.LLM, error) {
	opts := []ollama.Option{ollama.WithModel(model)}
	if c.serverURL != "" {
		opts = append(opts, ollama.WithServerURL(c.serverURL))
	}
	return ollama.New(opts...)
}

func chatMessageType(role Role) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func (c *OllamaClient) Complete(ctx context.Context, model string, messages []Message) (Completion, error) {
	start := time.Now()
	defer func() {
		monitoring.LLMCallDuration.WithLabelValues("ollama", model).Observe(time.Since(start).Seconds())
	}()

	m, err := c.newModel(model)
	if err != nil {
		return Completion{}, fmt.Errorf("failed to create ollama model: %w", err)
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}

	resp, err := m.GenerateContent(ctx, content)
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, util.ErrNoCompletion
	}

	return Completion{Content: resp.Choices[0].Content}, nil
}

func (c *OllamaClient) CompletePrompt(ctx context.Context, model, prompt string) (Completion, error) {
	return c.Complete(ctx, model, []Message{{Role: RoleUser, Content: prompt}})
}

// OllamaEmbedder computes embeddings with a local model.
type OllamaEmbedder struct {
	serverURL string
	model     string
}

func NewOllamaEmbedder(serverURL, model string) *OllamaEmbedder {
	return &OllamaEmbedder{serverURL: serverURL, model: model}
}

func (e *OllamaEmbedder) Model() string { return e.model }

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	opts := []ollama.Option{ollama.WithModel(e.model)}
	if e.serverURL != "" {
		opts = append(opts, ollama.WithServerURL(e.serverURL))
	}
	m, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama model: %w", err)
	}

	rows, err := m.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("embedding model returned no vectors")
	}

	// One row per input text; the server may split a long input into chunks.
	if len(rows) == 1 {
		return rows[0], nil
	}
	flat := make([]float32, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat, nil
}
