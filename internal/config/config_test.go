package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "taxseva" {
		t.Errorf("expected Name=taxseva, got %s", cfg.Name)
	}
	if cfg.Merchant.VPA != "taxseva@upi" {
		t.Errorf("expected merchant VPA taxseva@upi, got %s", cfg.Merchant.VPA)
	}
	if cfg.Payment.Latency() != 2500*time.Millisecond {
		t.Errorf("expected 2.5s latency, got %v", cfg.Payment.Latency())
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("TAXSEVA_DATA", "")
	t.Setenv("TAXSEVA_MERCHANT_VPA", "")

	path := filepath.Join(t.TempDir(), "taxseva.yaml")

	cfg := DefaultConfig()
	cfg.Merchant.VPA = "kochi@upi"
	cfg.Payment.LatencyMS = 100

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Merchant.VPA != "kochi@upi" {
		t.Errorf("expected VPA=kochi@upi, got %s", loaded.Merchant.VPA)
	}
	if loaded.Payment.LatencyMS != 100 {
		t.Errorf("expected latency 100ms, got %d", loaded.Payment.LatencyMS)
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TAXSEVA_DATA", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "taxseva" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TAXSEVA_DATA", "/tmp/records.json")
	t.Setenv("TAXSEVA_THEME", "dark")
	t.Setenv("TAXSEVA_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Data.Path != "/tmp/records.json" {
		t.Errorf("expected data path override, got %s", cfg.Data.Path)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme=dark, got %s", cfg.UI.Theme)
	}
	if !cfg.Logging.DebugMode {
		t.Error("expected debug mode enabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid default config, got %v", err)
	}

	cfg.Data.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty data path")
	}

	cfg = DefaultConfig()
	cfg.Payment.LatencyMS = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative latency")
	}

	cfg = DefaultConfig()
	cfg.UI.Theme = "sepia"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown theme")
	}
}
