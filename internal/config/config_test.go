package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Index.BaseURL != "https://pypi.org" {
		t.Errorf("BaseURL = %q", cfg.Index.BaseURL)
	}
	if cfg.Index.UserAgent != "pypi" {
		t.Errorf("UserAgent = %q", cfg.Index.UserAgent)
	}
	if cfg.Index.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Index.Timeout)
	}
	if cfg.Index.Name != "" {
		t.Errorf("Name = %q, want empty", cfg.Index.Name)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PYPI_BASE_URL":   "https://test.pypi.org",
		"PYPI_INDEX":      "testpypi",
		"PYPI_USER_AGENT": "mirror-bot/1.0",
		"PYPI_TIMEOUT":    "5s",
		"LOG_LEVEL":       "debug",
		"LOG_FORMAT":      "json",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Index.BaseURL != "https://test.pypi.org" || cfg.Index.Name != "testpypi" {
		t.Errorf("unexpected index config: %+v", cfg.Index)
	}
	if cfg.Index.UserAgent != "mirror-bot/1.0" {
		t.Errorf("UserAgent = %q", cfg.Index.UserAgent)
	}
	if cfg.Index.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Index.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PYPI_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Error("expected error for unparseable timeout")
	}
}
