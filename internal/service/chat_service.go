package service

import (
	"context"
	"fmt"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
	"crm_assistant_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	chatSystemPrompt = "Responde con claridad y brevedad."

	openAIChatModel = "gpt-3.5-turbo"
	ollamaChatModel = "gemma3:latest"
)

// messageLog persists both sides of a chat exchange.
type messageLog interface {
	SaveTurn(messages ...*model.ChatMessage) error
}

// ChatReply carries the model answer of a plain chat turn. Usage is only
// set for providers that report token counts.
type ChatReply struct {
	Response string          `json:"response"`
	Usage    *llm.TokenUsage `json:"usage,omitempty"`
}

// ChatService proxies single-turn conversations straight to a model,
// without retrieval or history, and logs every exchange.
type ChatService struct {
	gateway llm.Gateway
	log     messageLog
}

func NewChatService(gateway llm.Gateway, log messageLog) *ChatService {
	return &ChatService{gateway: gateway, log: log}
}

// ChatGPT sends the message to the hosted OpenAI model.
func (s *ChatService) ChatGPT(ctx context.Context, message string) (*ChatReply, error) {
	return s.chat(ctx, openAIChatModel, message)
}

// ChatOllama sends the message to the locally served Ollama model.
func (s *ChatService) ChatOllama(ctx context.Context, message string) (*ChatReply, error) {
	return s.chat(ctx, ollamaChatModel, message)
}

func (s *ChatService) chat(ctx context.Context, chatModel, message string) (*ChatReply, error) {
	completion, err := s.gateway.Complete(ctx, chatModel, []llm.Message{
		{Role: llm.RoleSystem, Content: chatSystemPrompt},
		{Role: llm.RoleUser, Content: message},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if err := s.log.SaveTurn(
		&model.ChatMessage{Role: model.RoleUser, Content: message, ChatModel: chatModel},
		&model.ChatMessage{Role: model.RoleAssistant, Content: completion.Content, ChatModel: chatModel},
	); err != nil {
		logger.Log.Warn("failed to log chat turn", zap.String("model", chatModel), zap.Error(err))
	}

	return &ChatReply{Response: completion.Content, Usage: completion.Usage}, nil
}
