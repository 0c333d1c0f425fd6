package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"crm_assistant_backend/internal/util"
)

func TestSynthesizeExtractsCandidate(t *testing.T) {
	gateway := &fakeGateway{content: "```sql\nSELECT count(*) FROM oportunities;\n```"}
	svc := NewSQLGenService(gateway)

	candidate, err := svc.Synthesize(context.Background(), "llama3.1:8b", "¿cuántas oportunidades?", "oportunities(id)", "")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if candidate != "SELECT count(*) FROM oportunities;" {
		t.Errorf("candidate = %q", candidate)
	}

	prompt := gateway.prompts[0]
	if !strings.Contains(prompt, "oportunity") {
		t.Errorf("naming rules missing from prompt")
	}
	if !strings.Contains(prompt, "oportunities(id)") {
		t.Errorf("schema context missing from prompt")
	}
}

func TestSynthesizeEmptyCandidate(t *testing.T) {
	gateway := &fakeGateway{content: "lo siento</think>no puedo generar esa consulta"}
	svc := NewSQLGenService(gateway)

	if _, err := svc.Synthesize(context.Background(), "llama3.1:8b", "pregunta", "", ""); !errors.Is(err, util.ErrEmptySQL) {
		t.Errorf("error = %v, want ErrEmptySQL", err)
	}
}
