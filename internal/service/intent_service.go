package service

import (
	"context"
	"fmt"
	"strings"

	"crm_assistant_backend/internal/llm"
)

// Intent is the closed set of labels a message can be classified into.
type Intent string

const (
	IntentSQL          Intent = "sql"
	IntentHello        Intent = "hello"
	IntentBye          Intent = "bye"
	IntentConversation Intent = "conversation"
	IntentUnrecognized Intent = "unrecognized"
)

// ParseIntent maps raw model output to an Intent. Anything outside the
// taxonomy, including empty or malformed output, is Unrecognized.
func ParseIntent(raw string) Intent {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sql":
		return IntentSQL
	case "hello":
		return IntentHello
	case "bye":
		return IntentBye
	case "conversation":
		return IntentConversation
	default:
		return IntentUnrecognized
	}
}

const classifyPromptTemplate = `
Clasifica el siguiente mensaje como:
- "sql" si requiere una consulta a base de datos incluyendo preguntas sobre leads, precontactos, asesores, ganados, ventas.
- "hello" si es un saludo o agradecimiento.
- "bye" si es una despedida, incluso si es informal (ej: "nos vemos", "hasta luego", "cuídate").
- "conversation" si es una conversación general.

Responde solo con una de las palabras: "sql", "hello", "bye" o "conversation". No expliques tu respuesta.
Si el mensaje es sobre **oportunidades** clasifícalo como "sql".
Considera el historial reciente si el mensaje actual es una continuación.

Historial reciente:
%s

Mensaje: %s
`

// IntentService classifies a user message with the local model. It is
// best-effort: a strange label routes the turn to the fallback branch, so
// there are no retries.
type IntentService struct {
	gateway llm.Gateway
	model   string
}

func NewIntentService(gateway llm.Gateway, model string) *IntentService {
	return &IntentService{gateway: gateway, model: model}
}

// Classify labels a message given the rendered history snippet
// (most-recent-last). Pure read: nothing is persisted here.
func (s *IntentService) Classify(ctx context.Context, message, historySnippet string) (Intent, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, historySnippet, message)

	completion, err := s.gateway.CompletePrompt(ctx, s.model, prompt)
	if err != nil {
		return IntentUnrecognized, err
	}

	return ParseIntent(completion.Content), nil
}
