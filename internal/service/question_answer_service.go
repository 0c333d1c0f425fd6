package service

import (
	"context"
	"fmt"
	"strings"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
	"crm_assistant_backend/pkg/logger"

	"go.uber.org/zap"
)

const qaNoAnswerResponse = "No se encontró respuesta"

const qaPromptTemplate = `Eres un asistente útil que responde preguntas basado estrictamente en los documentos proporcionados.

Contexto:
%s

Pregunta:
%s`

const consultSchemaText = `Tablas disponibles:

clientes(id, nombre, email, fecha_registro)
ventas(id, cliente_id, monto, fecha_venta)
productos(id, nombre, precio, stock)`

const consultPromptTemplate = `Eres un asistente experto en SQL. Tu tarea es generar únicamente la consulta SQL en formato PostgreSQL basada en la siguiente pregunta, usando el esquema de base de datos proporcionado.

🔒 No expliques, no agregues ningún comentario. Solo responde con la query lista para ejecutar.

📚 Esquema de base de datos:
%s

❓ Pregunta:
%s`

// QuestionAnswerService answers document questions by retrieving the nearest
// chunks of a collection and prompting a model with them. Each endpoint is
// bound to a fixed chat/embedding model pair, so the collections stay
// consistent with the embeddings they were built with.
type QuestionAnswerService struct {
	gateway       llm.Gateway
	allMinilmDocs documentSearcher
	openAIDocs    documentSearcher
	log           messageLog
	retrievalK    int
}

func NewQuestionAnswerService(gateway llm.Gateway, allMinilmDocs, openAIDocs documentSearcher, log messageLog, retrievalK int) *QuestionAnswerService {
	return &QuestionAnswerService{
		gateway:       gateway,
		allMinilmDocs: allMinilmDocs,
		openAIDocs:    openAIDocs,
		log:           log,
		retrievalK:    retrievalK,
	}
}

// AskOllama answers with the local Gemma3 model over the all-minilm
// indexed collection.
func (s *QuestionAnswerService) AskOllama(ctx context.Context, question string) (string, error) {
	return s.answer(ctx, s.allMinilmDocs, model.CollectionAllMinilm, ollamaChatModel, "Gemma3", "All-minilm", question)
}

// AskOpenAI answers with the hosted GPT-3.5 model over the
// text-embedding-3-small indexed collection.
func (s *QuestionAnswerService) AskOpenAI(ctx context.Context, question string) (string, error) {
	return s.answer(ctx, s.openAIDocs, model.CollectionOpenAI, openAIChatModel, "GPT-3.5-turbo", "Text-embedding-3-small", question)
}

func (s *QuestionAnswerService) answer(ctx context.Context, docs documentSearcher, collection, chatModel, chatLabel, embeddingLabel, question string) (string, error) {
	chunks, err := docs.Search(ctx, collection, question, s.retrievalK)
	if err != nil {
		return "", fmt.Errorf("document retrieval failed: %w", err)
	}

	prompt := fmt.Sprintf(qaPromptTemplate, joinChunkContent(chunks), question)
	completion, err := s.gateway.CompletePrompt(ctx, chatModel, prompt)
	if err != nil {
		return "", fmt.Errorf("question answering failed: %w", err)
	}

	answer := strings.TrimSpace(completion.Content)
	if answer == "" {
		answer = qaNoAnswerResponse
	}

	if err := s.log.SaveTurn(
		&model.ChatMessage{Role: model.RoleUser, Content: question},
		&model.ChatMessage{Role: model.RoleAssistant, Content: answer, ChatModel: chatLabel, EmbeddingModel: embeddingLabel},
	); err != nil {
		logger.Log.Warn("failed to log question-answer turn", zap.String("model", chatLabel), zap.Error(err))
	}

	return answer, nil
}

// ConsultCRMQuery generates a PostgreSQL query for the demo CRM schema.
// The query is returned as text and never executed.
func (s *QuestionAnswerService) ConsultCRMQuery(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(consultPromptTemplate, consultSchemaText, question)
	completion, err := s.gateway.CompletePrompt(ctx, openAIChatModel, prompt)
	if err != nil {
		return "", fmt.Errorf("query generation failed: %w", err)
	}

	answer := strings.TrimSpace(completion.Content)
	if answer == "" {
		return qaNoAnswerResponse, nil
	}
	return answer, nil
}
