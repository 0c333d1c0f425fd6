package service

import "strings"

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 50
)

// SplitText cuts text into chunks of at most chunkSize runes with roughly
// overlap runes shared between consecutive chunks. Within each window the
// cut is moved back to the nearest paragraph break, line break or space so
// chunks end on a natural boundary when one exists.
func SplitText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" || chunkSize <= 0 {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunk := strings.TrimSpace(string(runes[start:]))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := boundaryCut(runes, start, end)
		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// boundaryCut finds the best cut position within (start, end], preferring
// a paragraph break, then a line break, then a space, scanning backwards
// over at most half the window.
func boundaryCut(runes []rune, start, end int) int {
	minCut := start + (end-start)/2

	for i := end - 1; i > minCut; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i + 1
		}
	}
	for i := end - 1; i > minCut; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}
	for i := end - 1; i > minCut; i-- {
		if runes[i] == ' ' {
			return i + 1
		}
	}
	return end
}
