package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

func TestPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	want := filepath.Join("/tmp/xdg", appName, fileName)
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", appName, fileName)
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 0 || cfg.Style != "" || cfg.Labels != nil {
		t.Errorf("Load(missing) = %+v, want zero config", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	content := `
width = 640
alignment = "half"
palette = "heat"
formats = ["svg", "png"]
labels = false

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 640 {
		t.Errorf("Width = %v, want 640", cfg.Width)
	}
	if cfg.Alignment != "half" {
		t.Errorf("Alignment = %q, want half", cfg.Alignment)
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("Formats = %v, want 2 entries", cfg.Formats)
	}
	if cfg.Labels == nil || *cfg.Labels {
		t.Errorf("Labels = %v, want false", cfg.Labels)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "width = ", "parse config"},
		{"unknown key", "colour = \"red\"", "unknown config key"},
		{"bad alignment", "alignment = \"wobbly\"", "invalid alignment"},
		{"bad format", "formats = [\"gif\"]", "invalid format"},
		{"negative width", "width = -5", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), fileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", fileName)
	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != pipeline.DefaultWidth || cfg.Style != pipeline.DefaultStyle {
		t.Errorf("round trip = %+v", cfg)
	}
	if cfg.Labels == nil || !*cfg.Labels {
		t.Error("Labels should survive the round trip as true")
	}
}

func TestApply(t *testing.T) {
	labels := false
	cfg := Config{Width: 300, Height: 200, Style: "heat", Formats: []string{"png"}, Labels: &labels}

	opts := pipeline.Options{Width: 500}
	cfg.Apply(&opts)

	if opts.Width != 500 {
		t.Errorf("Width = %v, flag value should win", opts.Width)
	}
	if opts.Height != 200 {
		t.Errorf("Height = %v, want 200 from config", opts.Height)
	}
	if opts.Style != "heat" {
		t.Errorf("Style = %q, want heat", opts.Style)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}
	if !opts.NoLabels {
		t.Error("NoLabels should be set when labels = false")
	}
}

func TestValidateCodes(t *testing.T) {
	err := Config{Width: -1}.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidContainer) {
		t.Errorf("Validate() = %v, want INVALID_CONTAINER", err)
	}
}
