package service

import (
	"errors"
	"testing"

	"crm_assistant_backend/internal/util"
)

func TestStripSQLFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```sql\nSELECT 1;\n```", "\nSELECT 1;\n"},
		{"no fence", "SELECT 1;", "SELECT 1;"},
		{"already stripped is a no-op", "\nSELECT 1;\n", "\nSELECT 1;\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripSQLFence(tc.in); got != tc.want {
				t.Errorf("StripSQLFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractSQL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"plain statement",
			"SELECT * FROM oportunities;",
			"SELECT * FROM oportunities;",
		},
		{
			"fenced statement",
			"```sql\nSELECT count(*) FROM leads;\n```",
			"SELECT count(*) FROM leads;",
		},
		{
			"reasoning trace before the statement",
			"<think>pensando en la consulta</think>\nClaro: SELECT a FROM t; y listo",
			"SELECT a FROM t;",
		},
		{
			"trace with lowercase select and no semicolon",
			"razonamiento</think>select nombre from asesores",
			"select nombre from asesores",
		},
		{
			"trace without any select",
			"no puedo</think>lo siento, no hay consulta",
			"",
		},
		{
			"fenced statement inside a trace",
			"```sql\n</think>SELECT id FROM precontacts;\n```",
			"SELECT id FROM precontacts;",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractSQL(tc.in); got != tc.want {
				t.Errorf("ExtractSQL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidateSQL(t *testing.T) {
	allowed := []string{
		"SELECT * FROM oportunities WHERE stage_name ILIKE '%nuevo%'",
		"SELECT created_at FROM leads",
		// Forbidden words embedded in identifiers are not whole-word matches.
		"SELECT updated_at, created_by FROM precontacts",
	}
	for _, sql := range allowed {
		if err := ValidateSQL(sql); err != nil {
			t.Errorf("ValidateSQL(%q) = %v, want nil", sql, err)
		}
	}

	forbidden := []string{
		"DELETE FROM oportunities",
		"delete from leads where id = 1",
		"SELECT 1; DROP TABLE leads",
		"Update oportunities SET stage_name = 'Ganado'",
		"TRUNCATE precontacts",
	}
	for _, sql := range forbidden {
		if err := ValidateSQL(sql); !errors.Is(err, util.ErrForbiddenSQL) {
			t.Errorf("ValidateSQL(%q) = %v, want ErrForbiddenSQL", sql, err)
		}
	}
}
