package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

func TestLoader_ValidMinimalConfig(t *testing.T) {
	yamlContent := `
name: countries
endpoint: https://countries.example.com/graphql
`

	cfg, err := NewDefaultLoader().Parse([]byte(yamlContent))
	if err != nil {
		t.Fatalf("Failed to parse valid config: %v", err)
	}

	if cfg.Name != "countries" {
		t.Errorf("Expected name 'countries', got '%s'", cfg.Name)
	}
	if cfg.PersistedQueries {
		t.Error("Expected persisted queries to default to false")
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
	if len(cfg.Log.Outputs) != 1 || cfg.Log.Outputs[0] != "stderr" {
		t.Errorf("Expected default output stderr, got %v", cfg.Log.Outputs)
	}
}

func TestLoader_FullConfig(t *testing.T) {
	t.Setenv("GQL_TOKEN_HEADER", "abc123")

	yamlContent := `
endpoint: https://api.example.com/graphql?tenant=7
persisted_queries: true
timeout: 5s
headers:
  X-Client: ${GQL_TOKEN_HEADER}
log:
  level: debug
  format: json
  outputs: [stdout]
`

	cfg, err := NewDefaultLoader().Parse([]byte(yamlContent))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if !cfg.PersistedQueries {
		t.Error("Expected persisted queries to be enabled")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.Headers["X-Client"] != "abc123" {
		t.Errorf("Expected expanded header, got '%s'", cfg.Headers["X-Client"])
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected json format, got '%s'", cfg.Log.Format)
	}
}

func TestLoader_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"missing endpoint", "name: x\n", "endpoint: is required"},
		{"relative endpoint", "endpoint: /graphql\n", "must be an absolute URL"},
		{"bad scheme", "endpoint: ftp://example.com/graphql\n", "unsupported scheme"},
		{"bad level", "endpoint: https://example.com\nlog:\n  level: loud\n", "unknown level"},
		{"bad format", "endpoint: https://example.com\nlog:\n  format: xml\n", "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultLoader().Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, errors.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	_, err := NewDefaultLoader().Parse([]byte("endpoint: [unterminated"))
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Fatalf("Expected ErrConfiguration, got %v", err)
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transport.yaml")
	if err := os.WriteFile(path, []byte("endpoint: http://localhost:4000/graphql\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewDefaultLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Endpoint != "http://localhost:4000/graphql" {
		t.Errorf("Unexpected endpoint '%s'", cfg.Endpoint)
	}

	if _, err := NewDefaultLoader().Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for missing file, got %v", err)
	}
}
