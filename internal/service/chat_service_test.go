package service

import (
	"context"
	"errors"
	"testing"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
)

type fakeMessageLog struct {
	saved []*model.ChatMessage
	err   error
}

func (l *fakeMessageLog) SaveTurn(messages ...*model.ChatMessage) error {
	if l.err != nil {
		return l.err
	}
	l.saved = append(l.saved, messages...)
	return nil
}

func TestChatGPTProxiesAndLogs(t *testing.T) {
	gateway := &fakeGateway{content: "Un CRM gestiona clientes."}
	log := &fakeMessageLog{}
	svc := NewChatService(gateway, log)

	reply, err := svc.ChatGPT(context.Background(), "¿Qué es un CRM?")
	if err != nil {
		t.Fatalf("ChatGPT returned error: %v", err)
	}
	if reply.Response != "Un CRM gestiona clientes." {
		t.Errorf("response = %q", reply.Response)
	}
	if len(gateway.models) != 1 || gateway.models[0] != "gpt-3.5-turbo" {
		t.Errorf("models = %v, want [gpt-3.5-turbo]", gateway.models)
	}
	if len(log.saved) != 2 {
		t.Fatalf("logged %d messages, want 2", len(log.saved))
	}
	if log.saved[0].Role != model.RoleUser || log.saved[1].Role != model.RoleAssistant {
		t.Errorf("logged roles = %q, %q", log.saved[0].Role, log.saved[1].Role)
	}
}

func TestChatOllamaUsesLocalModel(t *testing.T) {
	gateway := &fakeGateway{content: "hola"}
	svc := NewChatService(gateway, &fakeMessageLog{})

	if _, err := svc.ChatOllama(context.Background(), "hola"); err != nil {
		t.Fatalf("ChatOllama returned error: %v", err)
	}
	if len(gateway.models) != 1 || gateway.models[0] != "gemma3:latest" {
		t.Errorf("models = %v, want [gemma3:latest]", gateway.models)
	}
}

func TestChatSurvivesLogFailure(t *testing.T) {
	gateway := &fakeGateway{content: "respuesta"}
	svc := NewChatService(gateway, &fakeMessageLog{err: errors.New("db down")})

	reply, err := svc.ChatGPT(context.Background(), "pregunta")
	if err != nil {
		t.Fatalf("a logging failure must not fail the turn: %v", err)
	}
	if reply.Response != "respuesta" {
		t.Errorf("response = %q", reply.Response)
	}
}

func TestChatPropagatesGatewayError(t *testing.T) {
	svc := NewChatService(&fakeGateway{err: errors.New("timeout")}, &fakeMessageLog{})

	if _, err := svc.ChatGPT(context.Background(), "pregunta"); err == nil {
		t.Fatal("expected an error from the gateway")
	}
}

var _ llm.Gateway = (*fakeGateway)(nil)
