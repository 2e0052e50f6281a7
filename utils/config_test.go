package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "telemetry.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.PreambleLines != 14 || cfg.Input.MetadataRows != 2 {
		t.Errorf("expected 14/2 layout, got %d/%d", cfg.Input.PreambleLines, cfg.Input.MetadataRows)
	}
	if cfg.Derive.KmhToMs != 0.277778 {
		t.Errorf("expected km/h factor 0.277778, got %v", cfg.Derive.KmhToMs)
	}
	if got := cfg.Plot.BrakeThresholdKPa(); got != 900*6.895 {
		t.Errorf("expected brake threshold %v kPa, got %v", 900*6.895, got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
input:
  preamble_lines: 10
plot:
  dpi: 72
server:
  addr: ":9000"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Input.PreambleLines != 10 {
		t.Errorf("expected preamble 10, got %d", cfg.Input.PreambleLines)
	}
	if cfg.Input.MetadataRows != 2 {
		t.Errorf("unset keys must keep defaults, got metadata_rows=%d", cfg.Input.MetadataRows)
	}
	if cfg.Plot.DPI != 72 || cfg.Server.Addr != ":9000" {
		t.Errorf("unexpected plot/server values: %d %s", cfg.Plot.DPI, cfg.Server.Addr)
	}
	if cfg.Source != path {
		t.Errorf("expected Source %s, got %q", path, cfg.Source)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("expected empty Source, got %q", cfg.Source)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "input: [not, a, map")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, "plot:\n  dpi: 0\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for dpi 0")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TELEMETRY_ADDR", "127.0.0.1:8081")
	t.Setenv("TELEMETRY_LOG_LEVEL", "debug")
	t.Setenv("TELEMETRY_PREAMBLE_LINES", "3")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Addr != "127.0.0.1:8081" {
		t.Errorf("expected addr override, got %s", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level override, got %s", cfg.Logging.Level)
	}
	if cfg.Input.PreambleLines != 3 {
		t.Errorf("expected preamble override, got %d", cfg.Input.PreambleLines)
	}
}

func TestInvalidPreambleOverrideIgnored(t *testing.T) {
	t.Setenv("TELEMETRY_PREAMBLE_LINES", "many")
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Input.PreambleLines != 14 {
		t.Errorf("non-numeric override must be ignored, got %d", cfg.Input.PreambleLines)
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}
