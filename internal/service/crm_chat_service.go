package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
	"crm_assistant_backend/pkg/logger"
	"crm_assistant_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Canned answers, returned verbatim without invoking a model.
const (
	greetingResponse = "¡Hola! 👋 Soy tu asistente de consultas para el CRM. \nPuedes hacerme preguntas como: \n- ¿Cuántas oportunidades hay?\n- Muestra los últimos 10 precontactos.\n¡Adelante, dime qué quieres saber! 😊"
	farewellResponse = "¡Hasta luego! 😊 Si necesitas algo más sobre el CRM, estaré aquí para ayudarte. ¡Que tengas un buen día!"
	fallbackResponse = "Solo puedo ayudarte con preguntas sobre la base de datos o SAP"
	refusalResponse  = "Lo siento, pero por razones de seguridad no puedo ejecutar consultas que modifiquen datos. \n¿En qué más puedo ayudarte?"
	errorResponse    = "Ha ocurrido un error"
)

// historyTurns is how many previous turns are rendered into prompts.
const historyTurns = 5

const conversationPromptTemplate = `
Eres un asistente conversacional experto.
Debes responder de manera natural y directa, utilizando como base el historial de conversación y los documentos proporcionados, sin mencionarlos explícitamente.
Si encuentras información relacionada en el contexto, complétala con tu conocimiento general para dar una respuesta más completa.
Si el tema no aparece en el contexto indica amablemente que no puedes responder y menciona los temas de los que sí dispones información.
Evita inventar datos.

Historial reciente:
%s

Contexto:
%s

Pregunta:
%s
`

const interpretPromptTemplate = `
Eres un experto en CRM y bases de datos que responde en español. Un usuario ha hecho la siguiente pregunta:

%s

Se ejecutó la siguiente consulta SQL:

%s

Y se obtuvo el siguiente resultado:

%s

Responde de manera clara, concisa, sin repetir la pregunta ni mencionar al usuario, enumerando los elementos de forma ordenada si es que el resultado es un array de varios objetos.
No incluyas saludos, introducciones ni encabezados como "Respuesta".
No incluyas la consulta SQL ni menciones nombres de tablas, columnas ni estructura técnica.
Si se incluyen fechas en el resultado, muéstralas en el formato día/mes/año (por ejemplo, 23/08/2024).
Si el resultado devuelve alguna contraseña, no la muestres.
`

type CrmQuestionRequest struct {
	Question string `json:"question" binding:"required"`
	LLMModel string `json:"llm_model"`
	UserID   uint   `json:"user_id" binding:"required"`
}

// CrmAnswer is the uniform terminal result of a turn. Answer echoes the
// question, or the executed SQL when a query actually ran.
type CrmAnswer struct {
	Answer         string      `json:"answer"`
	Result         interface{} `json:"result"`
	Interpretation string      `json:"interpretation"`
}

type CrmChatList struct {
	Chats         []model.CrmChat `json:"chats"`
	TotalMessages int64           `json:"total_messages"`
}

// Collaborators, narrowed to what the orchestrator consumes so tests can
// substitute fakes.
type conversationStore interface {
	Create(chat *model.CrmChat) error
	Update(chat *model.CrmChat) error
	RecentByUser(userID uint, n int) ([]model.CrmChat, error)
	CountByUser(userID uint) (int64, error)
}

type documentSearcher interface {
	Search(ctx context.Context, collection, query string, k int) ([]model.DocumentChunk, error)
}

type intentClassifier interface {
	Classify(ctx context.Context, message, historySnippet string) (Intent, error)
}

type sqlSynthesizer interface {
	Synthesize(ctx context.Context, model, question, contextText, historySnippet string) (string, error)
}

type sqlExecutor interface {
	Execute(ctx context.Context, sql string) ([]map[string]interface{}, error)
}

// CrmChatService orchestrates a question turn: history, classification,
// retrieval, SQL synthesis, the safety gate, execution and interpretation.
// Each turn is a single forward pass through those stages.
type CrmChatService struct {
	chats      conversationStore
	docs       documentSearcher
	classifier intentClassifier
	sqlgen     sqlSynthesizer
	executor   sqlExecutor
	gateway    llm.Gateway

	mu sync.RWMutex
	ai config.AIConfig
}

func NewCrmChatService(
	chats conversationStore,
	docs documentSearcher,
	classifier intentClassifier,
	sqlgen sqlSynthesizer,
	executor sqlExecutor,
	gateway llm.Gateway,
	ai config.AIConfig,
) *CrmChatService {
	return &CrmChatService{
		chats:      chats,
		docs:       docs,
		classifier: classifier,
		sqlgen:     sqlgen,
		executor:   executor,
		gateway:    gateway,
		ai:         ai,
	}
}

// UpdateAIConfig swaps in reloaded model settings.
func (s *CrmChatService) UpdateAIConfig(ai config.AIConfig) {
	s.mu.Lock()
	s.ai = ai
	s.mu.Unlock()
}

func (s *CrmChatService) aiConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ai
}

// intentUnknownLabel is the metric label for turns that failed before the
// message could be classified.
const intentUnknownLabel = "unknown"

// AskCrmDb processes one question end to end. It never returns an error:
// any internal failure degrades to a canned apology while whatever partial
// state was already persisted stays in place as a forensic record.
func (s *CrmChatService) AskCrmDb(ctx context.Context, req CrmQuestionRequest) CrmAnswer {
	answer, intent, err := s.processQuestion(ctx, req)
	if err != nil {
		logger.Log.Error("CRM question turn failed",
			zap.Uint("user_id", req.UserID),
			zap.String("question", req.Question),
			zap.Error(err),
		)
		label := intentUnknownLabel
		if intent != "" {
			label = string(intent)
		}
		monitoring.QuestionTurns.WithLabelValues(label, "failed").Inc()
		return CrmAnswer{
			Answer:         req.Question,
			Result:         nil,
			Interpretation: errorResponse,
		}
	}
	return answer
}

// processQuestion also reports the classified intent so failures can be
// attributed to the branch they happened in; it is empty until
// classification succeeds.
func (s *CrmChatService) processQuestion(ctx context.Context, req CrmQuestionRequest) (CrmAnswer, Intent, error) {
	ai := s.aiConfig()

	historySnippet, err := s.renderHistory(req.UserID)
	if err != nil {
		return CrmAnswer{}, "", fmt.Errorf("failed to load conversation history: %w", err)
	}

	intent, err := s.classifier.Classify(ctx, req.Question, historySnippet)
	if err != nil {
		return CrmAnswer{}, "", fmt.Errorf("intent classification failed: %w", err)
	}
	logger.Log.Debug("classified intent", zap.String("intent", string(intent)))

	var answer CrmAnswer
	switch intent {
	case IntentHello:
		answer, err = s.cannedTurn(req, intent, greetingResponse)
	case IntentBye:
		answer, err = s.cannedTurn(req, intent, farewellResponse)
	case IntentConversation:
		answer, err = s.conversationTurn(ctx, req, ai, historySnippet)
	case IntentSQL:
		answer, err = s.sqlTurn(ctx, req, ai, historySnippet)
	default:
		intent = IntentUnrecognized
		answer, err = s.cannedTurn(req, IntentUnrecognized, fallbackResponse)
	}
	return answer, intent, err
}

// renderHistory builds the prompt snippet from the user's last turns,
// oldest first.
func (s *CrmChatService) renderHistory(userID uint) (string, error) {
	recent, err := s.chats.RecentByUser(userID, historyTurns)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(recent))
	// RecentByUser is most-recent-first; walk backwards for chronological order.
	for i := len(recent) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("Usuario: %s\nAsistente: %s", recent[i].Question, recent[i].Interpretation))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *CrmChatService) cannedTurn(req CrmQuestionRequest, intent Intent, interpretation string) (CrmAnswer, error) {
	turn := &model.CrmChat{
		UserID:         req.UserID,
		Question:       req.Question,
		Interpretation: interpretation,
	}
	if err := s.chats.Create(turn); err != nil {
		return CrmAnswer{}, err
	}

	monitoring.QuestionTurns.WithLabelValues(string(intent), "answered").Inc()
	return CrmAnswer{
		Answer:         req.Question,
		Result:         nil,
		Interpretation: interpretation,
	}, nil
}

func (s *CrmChatService) conversationTurn(ctx context.Context, req CrmQuestionRequest, ai config.AIConfig, historySnippet string) (CrmAnswer, error) {
	chunks, err := s.docs.Search(ctx, model.CollectionGeneral, req.Question, ai.RetrievalK)
	if err != nil {
		return CrmAnswer{}, fmt.Errorf("document retrieval failed: %w", err)
	}

	prompt := fmt.Sprintf(conversationPromptTemplate, historySnippet, joinChunkContent(chunks), req.Question)
	completion, err := s.gateway.CompletePrompt(ctx, ai.ClassifierModel, prompt)
	if err != nil {
		return CrmAnswer{}, err
	}

	turn := &model.CrmChat{
		UserID:         req.UserID,
		Question:       req.Question,
		Interpretation: completion.Content,
	}
	if err := s.chats.Create(turn); err != nil {
		return CrmAnswer{}, err
	}

	monitoring.QuestionTurns.WithLabelValues(string(IntentConversation), "answered").Inc()
	return CrmAnswer{
		Answer:         req.Question,
		Result:         nil,
		Interpretation: completion.Content,
	}, nil
}

func (s *CrmChatService) sqlTurn(ctx context.Context, req CrmQuestionRequest, ai config.AIConfig, historySnippet string) (CrmAnswer, error) {
	// Persist the question right away so a partial record survives any
	// later failure.
	turn := &model.CrmChat{
		UserID:   req.UserID,
		Question: req.Question,
	}
	if err := s.chats.Create(turn); err != nil {
		return CrmAnswer{}, err
	}

	chunks, err := s.docs.Search(ctx, model.CollectionCRMSchema, req.Question, ai.RetrievalK)
	if err != nil {
		return CrmAnswer{}, fmt.Errorf("schema retrieval failed: %w", err)
	}

	synthModel := req.LLMModel
	if synthModel == "" {
		synthModel = ai.Model
	}

	candidate, err := s.sqlgen.Synthesize(ctx, synthModel, req.Question, joinChunkContent(chunks), historySnippet)
	if err != nil {
		return CrmAnswer{}, fmt.Errorf("SQL synthesis failed: %w", err)
	}

	turn.SQL = candidate
	if err := s.chats.Update(turn); err != nil {
		return CrmAnswer{}, err
	}

	if err := ValidateSQL(candidate); err != nil {
		turn.Interpretation = refusalResponse
		if err := s.chats.Update(turn); err != nil {
			return CrmAnswer{}, err
		}
		monitoring.QuestionTurns.WithLabelValues(string(IntentSQL), "refused").Inc()
		return CrmAnswer{
			Answer:         req.Question,
			Result:         nil,
			Interpretation: refusalResponse,
		}, nil
	}

	rows, err := s.executor.Execute(ctx, candidate)
	if err != nil {
		return CrmAnswer{}, fmt.Errorf("query execution failed: %w", err)
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return CrmAnswer{}, err
	}
	turn.Answer = rowsJSON
	if err := s.chats.Update(turn); err != nil {
		return CrmAnswer{}, err
	}

	prompt := fmt.Sprintf(interpretPromptTemplate, req.Question, candidate, string(rowsJSON))
	completion, err := s.gateway.CompletePrompt(ctx, ai.ClassifierModel, prompt)
	if err != nil {
		return CrmAnswer{}, fmt.Errorf("result interpretation failed: %w", err)
	}

	turn.Interpretation = completion.Content
	if err := s.chats.Update(turn); err != nil {
		return CrmAnswer{}, err
	}

	monitoring.QuestionTurns.WithLabelValues(string(IntentSQL), "answered").Inc()
	return CrmAnswer{
		Answer:         candidate,
		Result:         rows,
		Interpretation: completion.Content,
	}, nil
}

// ListByUser returns the user's turns in chronological order plus the
// unbounded total, independent of the requested limit.
func (s *CrmChatService) ListByUser(userID uint, limit int) (CrmChatList, error) {
	chats, err := s.chats.RecentByUser(userID, limit)
	if err != nil {
		return CrmChatList{}, err
	}

	total, err := s.chats.CountByUser(userID)
	if err != nil {
		return CrmChatList{}, err
	}

	for i, j := 0, len(chats)-1; i < j; i, j = i+1, j-1 {
		chats[i], chats[j] = chats[j], chats[i]
	}

	return CrmChatList{Chats: chats, TotalMessages: total}, nil
}

func joinChunkContent(chunks []model.DocumentChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n")
}
