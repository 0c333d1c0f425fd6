package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClientComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hola"}},
			},
			"usage": map[string]int{
				"prompt_tokens":     12,
				"completion_tokens": 3,
				"total_tokens":      15,
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	completion, err := client.Complete(context.Background(), "gpt-3.5-turbo", []Message{
		{Role: RoleSystem, Content: "Responde con claridad y brevedad."},
		{Role: RoleUser, Content: "saluda"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-3.5-turbo" || len(gotReq.Messages) != 2 {
		t.Errorf("request payload = %+v", gotReq)
	}
	if completion.Content != "hola" {
		t.Errorf("content = %q", completion.Content)
	}
	if completion.Usage == nil || completion.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v, want total 15", completion.Usage)
	}
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	if _, err := client.Complete(context.Background(), "gpt-3.5-turbo", []Message{{Role: RoleUser, Content: "x"}}); err == nil {
		t.Fatal("expected an error on non-200 status")
	}
}

func TestOpenAIClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	if _, err := client.Complete(context.Background(), "gpt-3.5-turbo", []Message{{Role: RoleUser, Content: "x"}}); err == nil {
		t.Fatal("expected an error when no choices are returned")
	}
}

func TestOpenAIEmbedder(t *testing.T) {
	var gotReq embeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder(server.URL, "test-key", "text-embedding-3-small")
	vector, err := embedder.Embed(context.Background(), "clientes registrados")
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	if gotReq.Model != "text-embedding-3-small" || gotReq.Input != "clientes registrados" {
		t.Errorf("request payload = %+v", gotReq)
	}
	if len(vector) != 3 {
		t.Errorf("vector length = %d, want 3", len(vector))
	}
	if embedder.Model() != "text-embedding-3-small" {
		t.Errorf("Model() = %q", embedder.Model())
	}
}
