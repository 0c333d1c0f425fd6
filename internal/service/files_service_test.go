package service

import (
	"errors"
	"testing"

	"crm_assistant_backend/internal/util"
)

func TestExtractTextPlain(t *testing.T) {
	text, err := extractText([]byte("contenido del documento"), ".txt")
	if err != nil {
		t.Fatalf("extractText returned error: %v", err)
	}
	if text != "contenido del documento" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	for _, ext := range []string{".docx", ".csv", ""} {
		if _, err := extractText([]byte("x"), ext); !errors.Is(err, util.ErrUnsupportedFile) {
			t.Errorf("extractText(%q) error = %v, want ErrUnsupportedFile", ext, err)
		}
	}
}

func TestExtractTextMalformedPDF(t *testing.T) {
	if _, err := extractText([]byte("not a pdf"), ".pdf"); err == nil {
		t.Fatal("expected an error for malformed PDF data")
	}
}
