package controller

import (
	"crm_assistant_backend/internal/service"
	"crm_assistant_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionAnswerController struct {
	Service *service.QuestionAnswerService
}

// QuestionRequest is the body of every question-answer endpoint.
type QuestionRequest struct {
	Question string `json:"question" binding:"required" example:"¿Cuántos clientes hay registrados?"`
}

func NewQuestionAnswerController(svc *service.QuestionAnswerService) *QuestionAnswerController {
	return &QuestionAnswerController{Service: svc}
}

// AskOllama godoc
// @Summary Document QA with Gemma3 over all-minilm embeddings
// @Tags QuestionAnswer
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=string}
// @Failure 400 {object} util.Response
// @Router /question-answer/ollama-gemma3-allminilm [post]
func (ctrl *QuestionAnswerController) AskOllama(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer, err := ctrl.Service.AskOllama(c.Request.Context(), req.Question)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, answer)
}

// AskOpenAI godoc
// @Summary Document QA with GPT-3.5 over text-embedding-3-small embeddings
// @Tags QuestionAnswer
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=string}
// @Failure 400 {object} util.Response
// @Router /question-answer/openai-35-turbo3-small [post]
func (ctrl *QuestionAnswerController) AskOpenAI(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer, err := ctrl.Service.AskOpenAI(c.Request.Context(), req.Question)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, answer)
}

// ConsultCRMQuery godoc
// @Summary Generate SQL for the demo CRM schema
// @Description Returns the generated PostgreSQL query as text without executing it
// @Tags QuestionAnswer
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=string}
// @Failure 400 {object} util.Response
// @Router /question-answer/consult-query-crm-openai-35-turbo3-small [post]
func (ctrl *QuestionAnswerController) ConsultCRMQuery(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	query, err := ctrl.Service.ConsultCRMQuery(c.Request.Context(), req.Question)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, query)
}
