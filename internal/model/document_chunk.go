package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Named vector collections. Each one behaves as an independent similarity
// index inside the document_chunks table.
const (
	CollectionGeneral   = "its_info_store"                  // general knowledge corpus
	CollectionCRMSchema = "document_ollama_allminilm_store" // CRM schema descriptions
	CollectionAllMinilm = "document_ollama_allminilm"       // QA corpus, all-minilm embeddings
	CollectionOpenAI    = "document_openai_3small"          // QA corpus, text-embedding-3-small
)

// DocumentChunk is one embedded excerpt of an ingested document. The
// embedding column is untyped vector so collections embedded with models of
// different dimensionality can share the table.
type DocumentChunk struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Collection string          `gorm:"size:100;index;not null" json:"collection"`
	Source     string          `gorm:"size:255" json:"source"`
	Content    string          `gorm:"type:text;not null" json:"content"`
	Embedding  pgvector.Vector `gorm:"type:vector" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
