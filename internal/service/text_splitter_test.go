package service

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("un texto corto", 512, 50)
	if len(chunks) != 1 || chunks[0] != "un texto corto" {
		t.Errorf("chunks = %#v, want the input unchanged", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("   \n ", 512, 50); chunks != nil {
		t.Errorf("chunks = %#v, want nil", chunks)
	}
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("palabra ", 400)
	chunks := SplitText(text, 512, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 512 {
			t.Errorf("chunk %d has %d runes, exceeds 512", i, n)
		}
	}
}

func TestSplitTextPrefersBoundaries(t *testing.T) {
	paragraph := strings.Repeat("a", 300) + "\n\n" + strings.Repeat("b", 300)
	chunks := SplitText(paragraph, 512, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected a split at the paragraph break, got %d chunks", len(chunks))
	}
	if strings.Contains(chunks[0], "b") {
		t.Errorf("first chunk crosses the paragraph break: %q", chunks[0])
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "registro"
	}
	text := strings.Join(words, " ")

	chunks := SplitText(text, 128, 20)
	joined := strings.Join(chunks, " ")
	if !strings.HasSuffix(joined, "registro") {
		t.Errorf("last chunk lost the tail of the input: %q", chunks[len(chunks)-1])
	}
	total := 0
	for _, c := range chunks {
		total += len([]rune(c))
	}
	if total < len([]rune(text))-len(chunks)*20 {
		t.Errorf("chunks cover %d runes of a %d rune input", total, len([]rune(text)))
	}
}
