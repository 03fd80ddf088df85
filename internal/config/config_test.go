package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kestreledit/kestrel/internal/option"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "kestrel.yaml", `
modelinefmt: "{bufname} @ {client}"
autoreload: always
ui_options:
  theme: dark
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ModelineFmt != "{bufname} @ {client}" {
		t.Errorf("ModelineFmt = %q", cfg.ModelineFmt)
	}
	if cfg.Autoreload != "always" {
		t.Errorf("Autoreload = %q, want always", cfg.Autoreload)
	}
	if cfg.UIOptions["theme"] != "dark" {
		t.Errorf("UIOptions = %v, want theme=dark", cfg.UIOptions)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "kestrel.toml", `
modelinefmt = "{bufname}"
autoreload = "never"

[ui_options]
theme = "light"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Autoreload != "never" {
		t.Errorf("Autoreload = %q, want never", cfg.Autoreload)
	}
	if cfg.UIOptions["theme"] != "light" {
		t.Errorf("UIOptions = %v, want theme=light", cfg.UIOptions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if !reflect.DeepEqual(cfg, File{}) {
		t.Errorf("Load() = %+v, want zero File", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "modelinefmt: [unclosed")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "conf.ini", "x=1")
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unknown extensions")
	}
}

func TestApply(t *testing.T) {
	store := option.NewStore()

	cfg := File{
		ModelineFmt: "{bufname}!",
		Autoreload:  "never",
		UIOptions:   map[string]string{"theme": "dark"},
	}
	if err := cfg.Apply(store); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := store.ModelineFmt(); got != "{bufname}!" {
		t.Errorf("ModelineFmt() = %q", got)
	}
	if got := store.Autoreload(); got != option.AutoreloadNever {
		t.Errorf("Autoreload() = %v, want never", got)
	}
	if got := store.UIOptions()["theme"]; got != "dark" {
		t.Errorf("UIOptions()[theme] = %q, want dark", got)
	}
}

func TestApplyZeroKeepsDefaults(t *testing.T) {
	store := option.NewStore()
	if err := (File{}).Apply(store); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := store.ModelineFmt(); got != option.DefaultModelineFmt {
		t.Errorf("ModelineFmt() = %q, want default", got)
	}
}

func TestApplyBadPolicy(t *testing.T) {
	store := option.NewStore()
	if err := (File{Autoreload: "perhaps"}).Apply(store); err == nil {
		t.Error("Apply() should reject an invalid autoreload policy")
	}
}
