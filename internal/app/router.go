package app

import (
	"crm_assistant_backend/docs"
	"crm_assistant_backend/internal/middleware"
	"crm_assistant_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	apiKey := middleware.APIKeyMiddleware(a.Config)

	chat := router.Group("/chat")
	{
		chat.POST("/opengpt", c.chat.ChatGPT)
		chat.POST("/ollama", c.chat.ChatOllama)

		guarded := chat.Group("/")
		guarded.Use(apiKey)
		{
			guarded.POST("/ask-crm-db", c.chat.AskCrmDb)
			guarded.GET("/list-crm-chats/:user_id/:message_number", c.chat.ListCrmChats)
		}
	}

	questionAnswer := router.Group("/question-answer")
	questionAnswer.Use(apiKey)
	{
		questionAnswer.POST("/ollama-gemma3-allminilm", c.questionAnswer.AskOllama)
		questionAnswer.POST("/openai-35-turbo3-small", c.questionAnswer.AskOpenAI)
		questionAnswer.POST("/consult-query-crm-openai-35-turbo3-small", c.questionAnswer.ConsultCRMQuery)
	}

	files := router.Group("/files")
	files.Use(apiKey)
	{
		files.POST("/all-minilm", c.files.UploadAllMinilm)
		files.POST("/openai-3-small", c.files.UploadOpenAI3Small)
		files.POST("/embed-schema", c.files.EmbedSchema)
	}
}
