// Package config loads and saves the squaremap configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/squaremap/config.toml, falling
// back to ~/.config/squaremap/config.toml. Every key is optional:
//
//	width = 1200
//	height = 800
//	alignment = "half"
//	style = "heat"
//	palette = "heat:#f7fbff:#08306b"
//	formats = ["svg", "png"]
//	scale = 2
//	labels = true
//
//	[server]
//	addr = ":8080"
//
// Values from the file only fill options the caller left unset, so command
// line flags always win.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/pipeline"
)

const (
	appName  = "squaremap"
	fileName = "config.toml"
)

// Config mirrors the configuration file.
type Config struct {
	Width     float64  `toml:"width,omitempty"`
	Height    float64  `toml:"height,omitempty"`
	Alignment string   `toml:"alignment,omitempty"`
	Style     string   `toml:"style,omitempty"`
	Palette   string   `toml:"palette,omitempty"`
	Formats   []string `toml:"formats,omitempty"`
	Scale     float64  `toml:"scale,omitempty"`
	Labels    *bool    `toml:"labels,omitempty"`
	Server    Server   `toml:"server"`
}

// Server holds settings for "squaremap serve".
type Server struct {
	Addr string `toml:"addr,omitempty"`
}

// Default returns the configuration written by "squaremap config init".
func Default() Config {
	labels := true
	return Config{
		Width:     pipeline.DefaultWidth,
		Height:    pipeline.DefaultHeight,
		Alignment: pipeline.DefaultAlignment,
		Style:     pipeline.DefaultStyle,
		Palette:   pipeline.DefaultPalette,
		Formats:   []string{pipeline.FormatSVG},
		Scale:     pipeline.DefaultScale,
		Labels:    &labels,
		Server:    Server{Addr: ":8080"},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the configuration at path. A missing file yields an empty
// Config and no error. Unknown keys are rejected so typos surface early.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%s: parse config: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown config key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.New(errors.ErrCodeInvalidContainer, "width and height must not be negative")
	}
	if c.Alignment != "" {
		if err := pipeline.ValidateAlignment(c.Alignment); err != nil {
			return err
		}
	}
	if c.Style != "" {
		if err := pipeline.ValidateStyle(c.Style); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	return nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Apply copies configured values into opts where opts has none.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Width == 0 {
		opts.Width = c.Width
	}
	if opts.Height == 0 {
		opts.Height = c.Height
	}
	if opts.Alignment == "" {
		opts.Alignment = c.Alignment
	}
	if opts.Style == "" {
		opts.Style = c.Style
	}
	if opts.Palette == "" {
		opts.Palette = c.Palette
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Formats
	}
	if opts.Scale == 0 {
		opts.Scale = c.Scale
	}
	if c.Labels != nil && !*c.Labels {
		opts.NoLabels = true
	}
}
