package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(""))
	if err != nil {
		t.Fatalf("empty config should fall back to defaults: %v", err)
	}
	if cfg.Period != "2025" {
		t.Fatalf("default period = %q, want 2025", cfg.Period)
	}
	if cfg.Database.Path != "./senametas.db" {
		t.Fatalf("default database path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ingest.CollectionPrefix != "metas_" {
		t.Fatalf("default collection prefix = %q", cfg.Ingest.CollectionPrefix)
	}
	if len(cfg.Ingest.Sheets) != 0 {
		t.Fatalf("default sheets = %v, want none", cfg.Ingest.Sheets)
	}
}

func TestValidateYAMLContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `
period: "2026-1"
database:
  path: /var/lib/senametas/metas.db
server:
  port: 9090
ingest:
  collection_prefix: "sena_"
  sheets:
    - "4. FORMACION X REGIONAL"
    - "5. FORMACION X CTROS"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Period != "2026-1" {
					t.Fatalf("period = %q", cfg.Period)
				}
				if cfg.Server.Port != 9090 {
					t.Fatalf("port = %d", cfg.Server.Port)
				}
				if len(cfg.Ingest.Sheets) != 2 {
					t.Fatalf("sheets = %v", cfg.Ingest.Sheets)
				}
			},
		},
		{
			name: "port out of range",
			content: `
server:
  port: 70000
`,
			wantErr: true,
		},
		{
			name: "port zero",
			content: `
server:
  port: 0
`,
			wantErr: true,
		},
		{
			name: "blank database path",
			content: `
database:
  path: ""
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "period: [unclosed",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ValidateYAMLContent([]byte(tc.content))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateYAMLContent: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestExampleYAML_Validates(t *testing.T) {
	t.Parallel()

	content := ExampleYAML()
	if !strings.Contains(content, "period:") {
		t.Fatal("example template is missing the period key")
	}
	if _, err := ValidateYAMLContent([]byte(content)); err != nil {
		t.Fatalf("example template must validate: %v", err)
	}
}
