package service

import (
	"context"
	"fmt"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/util"
)

const sqlPromptTemplate = `
Eres un experto en SQL. Dada la pregunta, debes crear una consulta SQL sintácticamente correcta, utilizando solo las columnas y tablas presentes en el contexto del esquema proporcionado.
%s
Debes responder utilizando **solo** código SQL, sin envolverla en algún bloque de código, sin saltos de línea, sin caracteres especiales, sin explicaciones, sin comentarios, y sin texto adicional.

Historial reciente:
%s

Contexto:
%s

Pregunta:
%s
`

// SQLGenService turns a natural-language question into a single SQL
// candidate using the retrieved schema context and the conversation
// history. The candidate is extracted from the raw model output but not yet
// validated; the caller runs it through ValidateSQL.
type SQLGenService struct {
	gateway llm.Gateway
}

func NewSQLGenService(gateway llm.Gateway) *SQLGenService {
	return &SQLGenService{gateway: gateway}
}

func (s *SQLGenService) Synthesize(ctx context.Context, model, question, contextText, historySnippet string) (string, error) {
	prompt := fmt.Sprintf(sqlPromptTemplate, renderNamingRules(), historySnippet, contextText, question)

	completion, err := s.gateway.CompletePrompt(ctx, model, prompt)
	if err != nil {
		return "", err
	}

	candidate := ExtractSQL(completion.Content)
	if candidate == "" {
		return "", util.ErrEmptySQL
	}
	return candidate, nil
}
