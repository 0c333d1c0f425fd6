package controller

import (
	"errors"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
	"crm_assistant_backend/internal/service"
	"crm_assistant_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FilesController ingests documents into the vector collections. Each
// endpoint fixes the embedding model its target collection was built with.
type FilesController struct {
	FilesService *service.FilesService
	Config       *config.Config
}

func NewFilesController(filesService *service.FilesService, cfg *config.Config) *FilesController {
	return &FilesController{FilesService: filesService, Config: cfg}
}

// UploadAllMinilm godoc
// @Summary Ingest a document with all-minilm embeddings
// @Description Accepts a .pdf or .txt file, splits it and indexes the chunks
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Document (.pdf or .txt)"
// @Success 200 {object} util.Response{data=service.FileIngestResult}
// @Failure 400 {object} util.Response
// @Router /files/all-minilm [post]
func (ctrl *FilesController) UploadAllMinilm(c *gin.Context) {
	ctrl.ingest(c, model.CollectionAllMinilm, "all-minilm")
}

// UploadOpenAI3Small godoc
// @Summary Ingest a document with text-embedding-3-small embeddings
// @Description Accepts a .pdf or .txt file, splits it and indexes the chunks
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Document (.pdf or .txt)"
// @Success 200 {object} util.Response{data=service.FileIngestResult}
// @Failure 400 {object} util.Response
// @Router /files/openai-3-small [post]
func (ctrl *FilesController) UploadOpenAI3Small(c *gin.Context) {
	ctrl.ingest(c, model.CollectionOpenAI, "text-embedding-3-small")
}

// EmbedSchema godoc
// @Summary Ingest CRM schema descriptions
// @Description Indexes schema documentation into the collection the SQL pipeline retrieves from
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Schema description (.pdf or .txt)"
// @Param model formData string false "Embedding model override"
// @Success 200 {object} util.Response{data=service.FileIngestResult}
// @Failure 400 {object} util.Response
// @Router /files/embed-schema [post]
func (ctrl *FilesController) EmbedSchema(c *gin.Context) {
	embeddingModel := c.PostForm("model")
	if embeddingModel == "" {
		embeddingModel = ctrl.Config.AI.EmbeddingModel
	}
	ctrl.ingest(c, model.CollectionCRMSchema, embeddingModel)
}

func (ctrl *FilesController) ingest(c *gin.Context, collection, embeddingModel string) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	embedder := llm.NewEmbedder(embeddingModel, ctrl.Config.AI.BaseURL, ctrl.Config.AI.APIKey, ctrl.Config.AI.OllamaBaseURL)
	result, err := ctrl.FilesService.ProcessFile(c.Request.Context(), file, collection, embedder)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedFile) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, result)
}
