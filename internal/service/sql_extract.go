package service

import (
	"regexp"
	"strings"

	"crm_assistant_backend/internal/util"
)

// Statements that modify data or schema are never executed, whatever the
// model generated.
var forbiddenSQLWords = []string{
	"insert",
	"update",
	"delete",
	"drop",
	"alter",
	"truncate",
	"create",
	"rename",
	"comment",
	"grant",
	"revoke",
	"merge",
	"replace",
}

var forbiddenSQLPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(forbiddenSQLWords, "|") + `)\b`)

// StripSQLFence removes a ```sql fenced-block marker from model output.
// Applying it to already-stripped text is a no-op.
func StripSQLFence(raw string) string {
	if strings.Contains(raw, "```sql") {
		raw = strings.Replace(raw, "```sql", "", 1)
		raw = strings.Replace(raw, "```", "", 1)
	}
	return raw
}

// ExtractSQL recovers a single SQL statement from noisy model output.
// Precedence: fence markers are stripped first; if a reasoning-trace
// delimiter (</think>) is present only the text after it is considered,
// and within that remainder the statement runs from the first
// case-insensitive SELECT through the next semicolon inclusive (or to the
// end of the text when no semicolon exists). No SELECT after the delimiter
// yields an empty candidate.
func ExtractSQL(raw string) string {
	sql := StripSQLFence(raw)

	const thinkTag = "</think>"
	if idx := strings.Index(sql, thinkTag); idx != -1 {
		after := sql[idx+len(thinkTag):]

		selectIdx := strings.Index(strings.ToLower(after), "select")
		if selectIdx == -1 {
			return ""
		}

		afterSelect := after[selectIdx:]
		if semi := strings.Index(afterSelect, ";"); semi != -1 {
			return strings.TrimSpace(afterSelect[:semi+1])
		}
		return strings.TrimSpace(afterSelect)
	}

	return strings.TrimSpace(sql)
}

// ValidateSQL rejects candidates containing a whole-word, case-insensitive
// match of any forbidden keyword. It performs no further syntax validation.
func ValidateSQL(sql string) error {
	if forbiddenSQLPattern.MatchString(sql) {
		return util.ErrForbiddenSQL
	}
	return nil
}
