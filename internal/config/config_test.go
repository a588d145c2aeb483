package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLabels(t *testing.T) {
	labels := DefaultLabels()

	if labels.Label.Position != "below" {
		t.Errorf("expected default position 'below', got '%s'", labels.Label.Position)
	}
	if labels.Label.Rows != 1 {
		t.Errorf("expected default rows 1, got %d", labels.Label.Rows)
	}
	if labels.FontSize.Mode != "auto" {
		t.Errorf("expected font size mode 'auto', got '%s'", labels.FontSize.Mode)
	}
	if len(labels.FontSize.Anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(labels.FontSize.Anchors))
	}
	if labels.Optimizer.MaxIterations != 500 {
		t.Errorf("expected max iterations 500, got %d", labels.Optimizer.MaxIterations)
	}
}

func TestDefaultLabels_NumericOptionsDecodeAsStrings(t *testing.T) {
	labels := DefaultLabels()

	rows, ok := labels.Experiments["num_rows"]
	if !ok {
		t.Fatal("expected num_rows experiment")
	}
	expected := []string{"1", "2", "3"}
	if len(rows.Options) != len(expected) {
		t.Fatalf("expected %d options, got %v", len(expected), rows.Options)
	}
	for i := range expected {
		if rows.Options[i] != expected[i] {
			t.Errorf("option %d = %q, want %q", i, rows.Options[i], expected[i])
		}
	}

	scales := labels.Experiments["font_size"]
	if len(scales.Options) != 3 || scales.Options[1] != "0.85" {
		t.Errorf("unexpected font_size options %v", scales.Options)
	}
}

func TestOverlay_PartialOverride(t *testing.T) {
	labels := DefaultLabels()

	data := []byte(`
label:
  position: above
experiments:
  position:
    enabled: false
`)
	if err := labels.Overlay(data); err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	if labels.Label.Position != "above" {
		t.Errorf("expected overridden position 'above', got '%s'", labels.Label.Position)
	}
	// Untouched values keep their defaults
	if labels.Label.Margin != 10 {
		t.Errorf("expected margin 10 to survive overlay, got %d", labels.Label.Margin)
	}
	if labels.Experiments["position"].Enabled {
		t.Error("expected position experiment to be disabled")
	}
	if !labels.Experiments["num_rows"].Enabled {
		t.Error("expected num_rows experiment to stay enabled")
	}
}

func TestOverlay_InvalidYAML(t *testing.T) {
	labels := DefaultLabels()
	if err := labels.Overlay([]byte("label: [unclosed")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFile_FromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.yaml")
	if err := os.WriteFile(path, []byte("label:\n  margin: 3\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("LABELS_CONFIG", path)

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Labels.Label.Margin != 3 {
		t.Errorf("expected margin 3, got %d", cfg.Labels.Label.Margin)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_DefaultPort(t *testing.T) {
	os.Unsetenv("LABELS_PORT")

	cfg := Load()

	if cfg.Server.Port != 8085 {
		t.Errorf("expected default port 8085, got %d", cfg.Server.Port)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("LABELS_PORT", "invalid")

	cfg := Load()

	// Should fall back to default
	if cfg.Server.Port != 8085 {
		t.Errorf("expected default port 8085 for invalid input, got %d", cfg.Server.Port)
	}
}

func TestLoad_PhotoPrismFromEnv(t *testing.T) {
	t.Setenv("PHOTOPRISM_URL", "http://photos.local")
	t.Setenv("PHOTOPRISM_USERNAME", "admin")

	cfg := Load()

	if cfg.PhotoPrism.URL != "http://photos.local" {
		t.Errorf("expected URL from env, got '%s'", cfg.PhotoPrism.URL)
	}
	if cfg.PhotoPrism.Username != "admin" {
		t.Errorf("expected username from env, got '%s'", cfg.PhotoPrism.Username)
	}
}
