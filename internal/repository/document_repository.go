package repository

import (
	"context"
	"fmt"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// DocumentRepository is the vector index over embedded document chunks.
// Collections share one table and are distinguished by the collection column.
type DocumentRepository struct {
	DB       *gorm.DB
	embedder llm.Embedder
}

func NewDocumentRepository(db *gorm.DB, embedder llm.Embedder) *DocumentRepository {
	return &DocumentRepository{DB: db, embedder: embedder}
}

// WithEmbedder returns a copy of the repository that embeds with the
// given model. Collections indexed with different embedding models must
// be queried with the model they were built with.
func (r *DocumentRepository) WithEmbedder(embedder llm.Embedder) *DocumentRepository {
	return &DocumentRepository{DB: r.DB, embedder: embedder}
}

// Upsert embeds each chunk and inserts it into the named collection.
// Returns the number of chunks stored.
func (r *DocumentRepository) Upsert(ctx context.Context, collection, source string, chunks []string) (int, error) {
	stored := 0
	for i, chunk := range chunks {
		if chunk == "" {
			continue
		}

		embedding, err := r.embedder.Embed(ctx, chunk)
		if err != nil {
			return stored, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		doc := &model.DocumentChunk{
			Collection: collection,
			Source:     source,
			Content:    chunk,
			Embedding:  pgvector.NewVector(embedding),
		}
		if err := r.DB.WithContext(ctx).Create(doc).Error; err != nil {
			return stored, fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
		stored++
	}
	return stored, nil
}

// Search embeds the query and returns the k nearest chunks of the
// collection, ordered by descending similarity.
func (r *DocumentRepository) Search(ctx context.Context, collection, query string, k int) ([]model.DocumentChunk, error) {
	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var chunks []model.DocumentChunk
	err = r.DB.WithContext(ctx).Raw(`
        SELECT id, collection, source, content, created_at
        FROM document_chunks
        WHERE collection = ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `, collection, pgvector.NewVector(queryEmbedding), k).Scan(&chunks).Error

	return chunks, err
}
