package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			APIKey: "test-key",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default model, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 256 {
		t.Errorf("expected 256 dimensions, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.MaxTokens != 8000 {
		t.Errorf("expected 8000 max tokens, got %d", cfg.Embedding.MaxTokens)
	}
	if cfg.Search.CandidateLimit != 100 {
		t.Errorf("expected candidate limit 100, got %d", cfg.Search.CandidateLimit)
	}
	if cfg.Index.HNSWM != 16 || cfg.Index.HNSWEFConstruct != 64 {
		t.Errorf("unexpected HNSW defaults: m=%d ef=%d", cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RESUMEDEX_TEST_KEY", "secret")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "api_key: ${RESUMEDEX_TEST_KEY}", "api_key: secret"},
		{"unset variable", "api_key: ${RESUMEDEX_TEST_UNSET}", "api_key: "},
		{"unset with default", "port: ${RESUMEDEX_TEST_UNSET:-8080}", "port: 8080"},
		{"set beats default", "api_key: ${RESUMEDEX_TEST_KEY:-other}", "api_key: secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
