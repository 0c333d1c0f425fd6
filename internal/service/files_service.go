package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"crm_assistant_backend/internal/llm"
	"crm_assistant_backend/internal/repository"
	"crm_assistant_backend/internal/util"
	"crm_assistant_backend/pkg/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const fileProcessedMessage = "Archivo procesado y almacenado exitosamente"

// FileIngestResult reports how much of an uploaded file was indexed.
type FileIngestResult struct {
	Message   string `json:"message"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
}

// FilesService ingests uploaded documents: it keeps the source file in the
// storage provider, splits the extracted text and indexes the chunks into a
// vector collection with the embedding model the collection was built with.
type FilesService struct {
	docs    *repository.DocumentRepository
	storage StorageProvider
}

func NewFilesService(docs *repository.DocumentRepository, storage StorageProvider) *FilesService {
	return &FilesService{docs: docs, storage: storage}
}

// ProcessFile ingests one uploaded document into the named collection.
// Only .pdf and .txt files are accepted.
func (s *FilesService) ProcessFile(ctx context.Context, file *multipart.FileHeader, collection string, embedder llm.Embedder) (*FileIngestResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	text, err := extractText(data, ext)
	if err != nil {
		return nil, err
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if _, err := s.storage.Upload(ctx, storedName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Log.Warn("failed to store source file",
			zap.String("filename", file.Filename),
			zap.Error(err))
	}

	chunks := SplitText(text, defaultChunkSize, defaultChunkOverlap)
	stored, err := s.docs.WithEmbedder(embedder).Upsert(ctx, collection, file.Filename, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to index document: %w", err)
	}

	logger.Log.Info("document ingested",
		zap.String("collection", collection),
		zap.String("filename", file.Filename),
		zap.String("embedding_model", embedder.Model()),
		zap.Int("chunks", stored))

	return &FileIngestResult{
		Message:   fileProcessedMessage,
		Documents: 1,
		Chunks:    stored,
	}, nil
}

func extractText(data []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDFText(data)
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", util.ErrUnsupportedFile, ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	var text strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}
