package app

import (
	"testing"

	"crm_assistant_backend/internal/config"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug migrates by default", "debug", false, true},
		{"release skips migrations", "release", false, false},
		{"release migrates when forced", "release", true, true},
		{"debug forced stays true", "debug", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				Server:       config.ServerConfig{Mode: tc.mode},
				ForceMigrate: tc.force,
			}
			if got := shouldMigrate(cfg); got != tc.want {
				t.Errorf("shouldMigrate(mode=%s, force=%t) = %t, want %t", tc.mode, tc.force, got, tc.want)
			}
		})
	}
}
