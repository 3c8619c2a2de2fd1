package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"revoice/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Transcriber.Model != "small" {
		t.Fatalf("unexpected default model: %q", cfg.Transcriber.Model)
	}
	if cfg.Workflow.Workers != 2 {
		t.Fatalf("unexpected default workers: %d", cfg.Workflow.Workers)
	}
	if !filepath.IsAbs(cfg.Paths.WorkDir) {
		t.Fatalf("work dir not expanded: %q", cfg.Paths.WorkDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
work_dir = "` + filepath.Join(dir, "work") + `"
output_dir = "` + filepath.Join(dir, "out") + `"

[workflow]
workers = 4

[translator]
base_url = "http://localhost:9999/"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected to load %s, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Workflow.Workers != 4 {
		t.Fatalf("workers override lost: %d", cfg.Workflow.Workers)
	}
	if cfg.Translator.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url not normalized: %q", cfg.Translator.BaseURL)
	}
}

func TestValidateRejectsSharedWorkAndOutputDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
work_dir = "` + dir + `"
output_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("expected shared-dir validation error, got %v", err)
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected log format validation error")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[translator]") {
		t.Fatal("sample missing translator section")
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
