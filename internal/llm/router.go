package llm

import (
	"context"
	"strings"
)

// ProviderRouter dispatches each invocation to the hosted or the local
// provider based on the requested model name.
type ProviderRouter struct {
	hosted Gateway
	local  Gateway
}

func NewProviderRouter(hosted, local Gateway) *ProviderRouter {
	return &ProviderRouter{hosted: hosted, local: local}
}

// IsHostedModel reports whether a model name belongs to the hosted
// OpenAI-compatible API. Everything else is served by Ollama.
func IsHostedModel(model string) bool {
	for _, prefix := range []string{"gpt-", "chatgpt", "o1", "o3", "o4", "text-embedding"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func (r *ProviderRouter) pick(model string) Gateway {
	if IsHostedModel(model) {
		return r.hosted
	}
	return r.local
}

func (r *ProviderRouter) Complete(ctx context.Context, model string, messages []Message) (Completion, error) {
	return r.pick(model).Complete(ctx, model, messages)
}

func (r *ProviderRouter) CompletePrompt(ctx context.Context, model, prompt string) (Completion, error) {
	return r.pick(model).CompletePrompt(ctx, model, prompt)
}

// NewEmbedder picks the embedding provider the same way: hosted models by
// name prefix, local otherwise.
func NewEmbedder(model, openAIBaseURL, openAIKey, ollamaURL string) Embedder {
	if IsHostedModel(model) {
		return NewOpenAIEmbedder(openAIBaseURL, openAIKey, model)
	}
	return NewOllamaEmbedder(ollamaURL, model)
}
