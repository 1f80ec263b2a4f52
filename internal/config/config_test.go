package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dvloznov/bankview/internal/pipeline"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.ClientsSource != pipeline.DefaultClientsURL {
		t.Errorf("ClientsSource = %q, want default sheet URL", cfg.ClientsSource)
	}
	if cfg.FetchTimeout != 0 {
		t.Errorf("FetchTimeout = %v, want 0", cfg.FetchTimeout)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("CLIENTS_SOURCE", "gs://bank/clientes.csv")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("REFRESH_SCHEDULE", "@every 10m")
	t.Setenv("STRICT_DECODING", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerPort != "9090" || cfg.PageSize != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ClientsSource != "gs://bank/clientes.csv" {
		t.Errorf("ClientsSource = %q", cfg.ClientsSource)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.RefreshSchedule != "@every 10m" || !cfg.StrictDecoding {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BRANCHES_SOURCE=./agencias.csv\nLOG_FORMAT=json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("BRANCHES_SOURCE")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BranchesSource != "./agencias.csv" || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"page size", "PAGE_SIZE", "0", "PAGE_SIZE"},
		{"log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
