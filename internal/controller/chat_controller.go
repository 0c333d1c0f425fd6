package controller

import (
	"strconv"

	"crm_assistant_backend/internal/service"
	"crm_assistant_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController serves the CRM question pipeline and the plain chat
// proxies.
type ChatController struct {
	CrmChatService *service.CrmChatService
	ChatService    *service.ChatService
}

// ChatMessageRequest is the body of the plain proxy endpoints.
type ChatMessageRequest struct {
	Message string `json:"message" binding:"required" example:"¿Qué es un CRM?"`
}

func NewChatController(crmChatService *service.CrmChatService, chatService *service.ChatService) *ChatController {
	return &ChatController{CrmChatService: crmChatService, ChatService: chatService}
}

// AskCrmDb godoc
// @Summary Ask the CRM database
// @Description Answers a natural-language question about the CRM, generating and executing SQL when needed
// @Tags Chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CrmQuestionRequest true "Question"
// @Success 200 {object} util.Response{data=service.CrmAnswer}
// @Failure 400 {object} util.Response
// @Router /chat/ask-crm-db [post]
func (ctrl *ChatController) AskCrmDb(c *gin.Context) {
	var req service.CrmQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	answer := ctrl.CrmChatService.AskCrmDb(c.Request.Context(), req)
	util.Success(c, answer)
}

// ListCrmChats godoc
// @Summary List a user's CRM conversation
// @Description Returns the user's latest turns in chronological order plus the total count
// @Tags Chat
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path int true "User ID"
// @Param message_number path int true "Number of turns to return"
// @Success 200 {object} util.Response{data=service.CrmChatList}
// @Failure 400 {object} util.Response
// @Router /chat/list-crm-chats/{user_id}/{message_number} [get]
func (ctrl *ChatController) ListCrmChats(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid user_id")
		return
	}

	limit, err := strconv.Atoi(c.Param("message_number"))
	if err != nil || limit < 1 {
		util.BadRequest(c, "invalid message_number")
		return
	}

	list, err := ctrl.CrmChatService.ListByUser(uint(userID), limit)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, list)
}

// ChatGPT godoc
// @Summary Chat with the hosted model
// @Description Forwards a single message to the hosted OpenAI model
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatMessageRequest true "Message"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response
// @Router /chat/opengpt [post]
func (ctrl *ChatController) ChatGPT(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	reply, err := ctrl.ChatService.ChatGPT(c.Request.Context(), req.Message)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, reply)
}

// ChatOllama godoc
// @Summary Chat with the local model
// @Description Forwards a single message to the locally served Ollama model
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatMessageRequest true "Message"
// @Success 200 {object} util.Response{data=service.ChatReply}
// @Failure 400 {object} util.Response
// @Router /chat/ollama [post]
func (ctrl *ChatController) ChatOllama(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	reply, err := ctrl.ChatService.ChatOllama(c.Request.Context(), req.Message)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, reply)
}
