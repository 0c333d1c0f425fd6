// Index a CRM schema description file into the vector store.
//
// The SQL pipeline retrieves schema context from this collection, so it
// must be populated before /chat/ask-crm-db can answer data questions.
// The /files/embed-schema endpoint does the same over HTTP; this script
// exists for deployments where the file lives on the server.
//
// Usage: go run scripts/embed_schema.go <schema-file> [embedding-model]
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"crm_assistant_backend/internal/config"
	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"
	"crm_assistant_backend/internal/repository"
	"crm_assistant_backend/internal/service"
	"crm_assistant_backend/pkg/database"
	"crm_assistant_backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/embed_schema.go <schema-file> [embedding-model]")
	}
	schemaPath := os.Args[1]

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	embeddingModel := cfg.AI.EmbeddingModel
	if len(os.Args) > 2 {
		embeddingModel = os.Args[2]
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	embedder := llm.NewEmbedder(embeddingModel, cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.OllamaBaseURL)
	docs := repository.NewDocumentRepository(db, embedder)

	chunks := service.SplitText(string(data), 512, 50)
	stored, err := docs.Upsert(context.Background(), model.CollectionCRMSchema, filepath.Base(schemaPath), chunks)
	if err != nil {
		log.Fatalf("Failed to index schema: %v", err)
	}

	log.Printf("Schema indexed: %d chunks stored in %s", stored, model.CollectionCRMSchema)
}
