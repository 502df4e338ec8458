// Package config loads the optional .style-tokens.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is looked up in the work dir when no --config is given.
const DefaultFileName = ".style-tokens.toml"

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
	FormatYAML  = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var accessorNameRegex = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Config holds the user-tunable settings. Glob patterns are intentionally absent.
type Config struct {
	// Accessors are extra theme accessor names, added to the built-in ones.
	Accessors []string `toml:"accessors"`
	Format    string   `toml:"format"`
	Color     string   `toml:"color"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Format: FormatText,
		Color:  ColorAuto,
	}
}

// Load reads the config for workDir. An explicit path must exist; the default
// file is optional.
func Load(workDir, explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		path = filepath.Join(workDir, DefaultFileName)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return cfg, nil
			}
			return cfg, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field, returning an error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatSARIF, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q (want text, json, sarif or yaml)", ErrInvalidConfig, c.Format)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: unknown color mode %q (want auto, always or never)", ErrInvalidConfig, c.Color)
	}

	for _, name := range c.Accessors {
		if !accessorNameRegex.MatchString(name) {
			return fmt.Errorf("%w: accessor %q is not an identifier", ErrInvalidConfig, name)
		}
	}
	return nil
}
