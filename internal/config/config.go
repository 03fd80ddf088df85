// Package config loads session options from a YAML or TOML file and
// applies them to the option store. A missing file is not an error; the
// store keeps its defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/kestreledit/kestrel/internal/option"
	"github.com/kestreledit/kestrel/internal/ui"
)

// File is the on-disk configuration shape.
type File struct {
	ModelineFmt string            `yaml:"modelinefmt" toml:"modelinefmt"`
	Autoreload  string            `yaml:"autoreload" toml:"autoreload"`
	UIOptions   map[string]string `yaml:"ui_options" toml:"ui_options"`
}

// Load reads a configuration file. The decoder is chosen by extension:
// .yaml/.yml or .toml. A missing file yields a zero File and no error.
func Load(path string) (File, error) {
	var cfg File

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return File{}, &ParseError{Path: path, Err: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return File{}, &ParseError{Path: path, Err: err}
		}
	default:
		return File{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	return cfg, nil
}

// Apply writes the loaded values into the store. Zero fields keep the
// store's current values. An invalid autoreload policy is reported, the
// remaining fields are still applied.
func (f File) Apply(store *option.Store) error {
	if f.ModelineFmt != "" {
		store.SetModelineFmt(f.ModelineFmt)
	}
	if f.UIOptions != nil {
		store.SetUIOptions(ui.Options(f.UIOptions))
	}
	if f.Autoreload != "" {
		policy, err := option.ParseAutoreload(f.Autoreload)
		if err != nil {
			return err
		}
		store.SetAutoreload(policy)
	}
	return nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
