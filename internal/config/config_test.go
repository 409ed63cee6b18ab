package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkoosis/patchbench/internal/matrix"
)

// isolate runs the test in an empty directory with no user config or
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	for _, key := range []string{"PATCHBENCH_INDIR", "PATCHBENCH_TOOLDIR", "PATCHBENCH_PLATFORM", "PATCHBENCH_DEBUG", "PATCHBENCH_NO_COLOR", "NO_COLOR"} {
		t.Setenv(key, "")
	}
	return tempDir
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(FileName, []byte("indir: x\n"), 0o600); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if got := getConfigPath(); got != FileName {
		t.Fatalf("expected local config path, got %q", got)
	}
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	tempDir := isolate(t)
	configHome := filepath.Join(tempDir, "xdg", "patchbench")
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("failed to create XDG config directory: %v", err)
	}
	configPath := filepath.Join(configHome, FileName)
	if err := os.WriteFile(configPath, []byte("indir: xdg\n"), 0o600); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	if got := getConfigPath(); got != configPath {
		t.Fatalf("expected XDG config path %q, got %q", configPath, got)
	}
}

func TestLoadConfig_ReturnsDefaults_When_NoFile(t *testing.T) {
	isolate(t)

	cfg, source, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "" {
		t.Fatalf("expected no source, got %q", source)
	}
	if cfg.InputDir != DefaultInputDir || cfg.ToolDir != DefaultToolDir || cfg.Patcher != DefaultPatcher {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_MergesYAMLOverrides_When_FilePresent(t *testing.T) {
	isolate(t)
	yamlContent := "" +
		"indir: corpus\n" +
		"tooldir: /opt/zucchini\n" +
		"platform: win\n" +
		"archiver: /usr/bin/7za\n" +
		"out_root: results\n" +
		"verify: true\n" +
		"matrix:\n" +
		"  - {old: 1, new: 2, file: chrome.dll}\n"
	if err := os.WriteFile(FileName, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, source, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != FileName {
		t.Fatalf("expected source %q, got %q", FileName, source)
	}
	if cfg.InputDir != "corpus" || cfg.ToolDir != "/opt/zucchini" || cfg.Platform != "win" {
		t.Fatalf("unexpected path values: %+v", cfg)
	}
	if cfg.Archiver != "/usr/bin/7za" || cfg.OutRoot != "results" || !cfg.Verify {
		t.Fatalf("unexpected tool values: %+v", cfg)
	}
	if cfg.Patcher != DefaultPatcher {
		t.Fatalf("patcher should keep default, got %q", cfg.Patcher)
	}
	want := []matrix.WorkItem{{Old: 1, New: 2, Artifact: matrix.ChromeDLL}}
	if len(cfg.Matrix) != 1 || cfg.Matrix[0] != want[0] {
		t.Fatalf("unexpected matrix: %+v", cfg.Matrix)
	}
}

func TestLoadConfig_ExplicitMissingFileIsError(t *testing.T) {
	isolate(t)
	if _, _, err := LoadConfig("nope.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfig_MalformedYAMLIsError(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(FileName, []byte("matrix: [\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, _, err := LoadConfig(""); err == nil {
		t.Fatal("expected parse error")
	}
}
