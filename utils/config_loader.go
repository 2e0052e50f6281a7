package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ─── Section configs ────────────────────────────────────────────────────

type InputConfig struct {
	PreambleLines int `yaml:"preamble_lines"`
	MetadataRows  int `yaml:"metadata_rows"`
}

type DeriveConfig struct {
	KmhToMs float64 `yaml:"kmh_to_ms"`
}

type PlotConfig struct {
	WidthIn           float64 `yaml:"width_in"`
	HeightIn          float64 `yaml:"height_in"`
	DPI               int     `yaml:"dpi"`
	BrakeThresholdPSI float64 `yaml:"brake_threshold_psi"`
	PSIToKPa          float64 `yaml:"psi_to_kpa"`
	PowerThresholdKW  float64 `yaml:"power_threshold_kw"`
	ShowThresholds    bool    `yaml:"show_thresholds"`
}

// BrakeThresholdKPa is the brake reference line in kPa.
func (p PlotConfig) BrakeThresholdKPa() float64 {
	return p.BrakeThresholdPSI * p.PSIToKPa
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	MaxUploadMB     int    `yaml:"max_upload_mb"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// FileOptions converts the logging section for InitLogger.
func (c LoggingConfig) FileOptions() LogFileOptions {
	return LogFileOptions{
		Path:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

// Config is the top-level structure for telemetry.yaml.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Derive  DeriveConfig  `yaml:"derive"`
	Plot    PlotConfig    `yaml:"plot"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file the config was read from; empty when only the
	// built-in defaults apply.
	Source string `yaml:"-"`
}

// DefaultConfig returns the built-in settings, matching the layout of the
// logger's CSV export.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			PreambleLines: 14,
			MetadataRows:  2,
		},
		Derive: DeriveConfig{
			KmhToMs: 0.277778,
		},
		Plot: PlotConfig{
			WidthIn:           14,
			HeightIn:          12,
			DPI:               150,
			BrakeThresholdPSI: 900,
			PSIToKPa:          6.895,
			PowerThresholdKW:  15,
			ShowThresholds:    true,
		},
		Server: ServerConfig{
			Addr:            ":5000",
			MaxUploadMB:     32,
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 60,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads telemetry.yaml over the defaults, then applies
// environment overrides and validates. A missing file is not an error;
// Source stays empty in that case.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
			cfg.Source = path
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("TELEMETRY_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if lvl := os.Getenv("TELEMETRY_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if n := os.Getenv("TELEMETRY_PREAMBLE_LINES"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			cfg.Input.PreambleLines = v
		}
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Input.PreambleLines < 0 {
		return fmt.Errorf("input.preamble_lines must be >= 0, got %d", c.Input.PreambleLines)
	}
	if c.Input.MetadataRows < 0 {
		return fmt.Errorf("input.metadata_rows must be >= 0, got %d", c.Input.MetadataRows)
	}
	if c.Derive.KmhToMs <= 0 {
		return fmt.Errorf("derive.kmh_to_ms must be positive, got %g", c.Derive.KmhToMs)
	}
	if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
		return fmt.Errorf("invalid plot size %gx%g in", c.Plot.WidthIn, c.Plot.HeightIn)
	}
	if c.Plot.DPI <= 0 || c.Plot.DPI > 600 {
		return fmt.Errorf("plot.dpi %d outside [1, 600]", c.Plot.DPI)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
