package service

import (
	"context"
	"strings"
	"testing"

	"crm_assistant_backend/internal/model"
)

func TestAskOllamaRetrievesAndAnswers(t *testing.T) {
	searcher := &fakeSearcher{chunks: []model.DocumentChunk{{Content: "El manual dice X."}}}
	gateway := &fakeGateway{content: "Según el manual, X."}
	log := &fakeMessageLog{}
	svc := NewQuestionAnswerService(gateway, searcher, &fakeSearcher{}, log, 4)

	answer, err := svc.AskOllama(context.Background(), "¿qué dice el manual?")
	if err != nil {
		t.Fatalf("AskOllama returned error: %v", err)
	}
	if answer != "Según el manual, X." {
		t.Errorf("answer = %q", answer)
	}
	if len(searcher.collections) != 1 || searcher.collections[0] != model.CollectionAllMinilm {
		t.Errorf("collections = %v, want [%s]", searcher.collections, model.CollectionAllMinilm)
	}
	if len(gateway.models) != 1 || gateway.models[0] != "gemma3:latest" {
		t.Errorf("models = %v, want [gemma3:latest]", gateway.models)
	}
	if !strings.Contains(gateway.prompts[0], "El manual dice X.") {
		t.Errorf("retrieved context missing from prompt")
	}
	if len(log.saved) != 2 || log.saved[1].ChatModel != "Gemma3" || log.saved[1].EmbeddingModel != "All-minilm" {
		t.Errorf("logged messages = %#v", log.saved)
	}
}

func TestAskOpenAIUsesItsOwnCollection(t *testing.T) {
	searcher := &fakeSearcher{}
	gateway := &fakeGateway{content: "respuesta"}
	svc := NewQuestionAnswerService(gateway, &fakeSearcher{}, searcher, &fakeMessageLog{}, 4)

	if _, err := svc.AskOpenAI(context.Background(), "pregunta"); err != nil {
		t.Fatalf("AskOpenAI returned error: %v", err)
	}
	if len(searcher.collections) != 1 || searcher.collections[0] != model.CollectionOpenAI {
		t.Errorf("collections = %v, want [%s]", searcher.collections, model.CollectionOpenAI)
	}
	if gateway.models[0] != "gpt-3.5-turbo" {
		t.Errorf("model = %q, want gpt-3.5-turbo", gateway.models[0])
	}
}

func TestAskOllamaEmptyCompletionFallsBack(t *testing.T) {
	svc := NewQuestionAnswerService(&fakeGateway{content: "  \n"}, &fakeSearcher{}, &fakeSearcher{}, &fakeMessageLog{}, 4)

	answer, err := svc.AskOllama(context.Background(), "pregunta sin respuesta")
	if err != nil {
		t.Fatalf("AskOllama returned error: %v", err)
	}
	if answer != qaNoAnswerResponse {
		t.Errorf("answer = %q, want %q", answer, qaNoAnswerResponse)
	}
}

func TestConsultCRMQueryIncludesSchema(t *testing.T) {
	gateway := &fakeGateway{content: "SELECT nombre FROM clientes;"}
	svc := NewQuestionAnswerService(gateway, &fakeSearcher{}, &fakeSearcher{}, &fakeMessageLog{}, 4)

	query, err := svc.ConsultCRMQuery(context.Background(), "nombres de clientes")
	if err != nil {
		t.Fatalf("ConsultCRMQuery returned error: %v", err)
	}
	if query != "SELECT nombre FROM clientes;" {
		t.Errorf("query = %q", query)
	}
	prompt := gateway.prompts[0]
	for _, table := range []string{"clientes", "ventas", "productos"} {
		if !strings.Contains(prompt, table) {
			t.Errorf("schema table %q missing from prompt", table)
		}
	}
}
