package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			APIKey: "test-key",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingAPIKeyIsFatal(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Strategy = "linear_probe"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown search strategy")
	}
}

func TestApplyDefaults_SearchReferenceValues(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("default_limit = %d, want 10", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 50 {
		t.Errorf("max_limit = %d, want 50", cfg.Search.MaxLimit)
	}
	if cfg.Search.MinScore != 0.8 {
		t.Errorf("min_score = %g, want 0.8", cfg.Search.MinScore)
	}
	if cfg.Search.OversampleFactor != 15 {
		t.Errorf("oversample_factor = %d, want 15", cfg.Search.OversampleFactor)
	}
	if cfg.Search.MinCandidatePool != 150 {
		t.Errorf("min_candidate_pool = %d, want 150", cfg.Search.MinCandidatePool)
	}
	if cfg.Search.Strategy != StrategyIndex {
		t.Errorf("strategy = %q, want %q", cfg.Search.Strategy, StrategyIndex)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LV_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${LV_TEST_KEY}\nmodel: ${LV_UNSET:-fallback}")))
	want := "api_key: secret\nmodel: fallback"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
