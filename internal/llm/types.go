// Package llm provides a uniform gateway over the chat-completion and
// embedding providers the service uses: a hosted OpenAI-compatible API and a
// locally served Ollama instance. Call sites pick the provider through the
// model-name string.
package llm

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Completion is the text a model generated for one invocation. Usage is only
// populated by providers that report it.
type Completion struct {
	Content string
	Usage   *TokenUsage
}

// Gateway invokes a chat-completion model with role-tagged messages or a
// pre-formatted prompt string.
type Gateway interface {
	Complete(ctx context.Context, model string, messages []Message) (Completion, error)
	CompletePrompt(ctx context.Context, model, prompt string) (Completion, error)
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}
