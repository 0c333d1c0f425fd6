package service

import (
	"context"
	"errors"
	"testing"

	"crm_assistant_backend/internal/llm"
)

// fakeGateway returns a scripted completion and records the prompts it saw.
type fakeGateway struct {
	content string
	err     error
	prompts []string
	models  []string
}

func (g *fakeGateway) Complete(ctx context.Context, model string, messages []llm.Message) (llm.Completion, error) {
	g.models = append(g.models, model)
	for _, m := range messages {
		g.prompts = append(g.prompts, m.Content)
	}
	return llm.Completion{Content: g.content}, g.err
}

func (g *fakeGateway) CompletePrompt(ctx context.Context, model, prompt string) (llm.Completion, error) {
	g.models = append(g.models, model)
	g.prompts = append(g.prompts, prompt)
	return llm.Completion{Content: g.content}, g.err
}

func TestParseIntent(t *testing.T) {
	cases := []struct {
		in   string
		want Intent
	}{
		{"sql", IntentSQL},
		{" SQL \n", IntentSQL},
		{"hello", IntentHello},
		{"Bye", IntentBye},
		{"conversation", IntentConversation},
		{"", IntentUnrecognized},
		{"consulta", IntentUnrecognized},
		{"sql, porque pregunta por leads", IntentUnrecognized},
	}
	for _, tc := range cases {
		if got := ParseIntent(tc.in); got != tc.want {
			t.Errorf("ParseIntent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIntentServiceClassify(t *testing.T) {
	gateway := &fakeGateway{content: "sql"}
	svc := NewIntentService(gateway, "llama3.1:8b")

	intent, err := svc.Classify(context.Background(), "¿Cuántas oportunidades hay?", "")
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if intent != IntentSQL {
		t.Errorf("intent = %q, want %q", intent, IntentSQL)
	}
	if len(gateway.models) != 1 || gateway.models[0] != "llama3.1:8b" {
		t.Errorf("classifier model = %v, want [llama3.1:8b]", gateway.models)
	}
}

func TestIntentServiceClassifyError(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("connection refused")}
	svc := NewIntentService(gateway, "llama3.1:8b")

	intent, err := svc.Classify(context.Background(), "hola", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if intent != IntentUnrecognized {
		t.Errorf("intent on error = %q, want %q", intent, IntentUnrecognized)
	}
}
