package app

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		SourceDir:      "include",
		FileExtensions: []string{".h"},
		Access:         "public",
		ToolVersion:    "1.9.8",
		DoxyfilePath:   "Doxyfile",
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing source",
			mutate:  func(c *Config) { c.SourceDir = " " },
			wantErr: "source directory",
		},
		{
			name:    "missing version",
			mutate:  func(c *Config) { c.ToolVersion = "" },
			wantErr: "tool.version",
		},
		{
			name:    "no extensions",
			mutate:  func(c *Config) { c.FileExtensions = nil },
			wantErr: "file extension",
		},
		{
			name:    "blank extension",
			mutate:  func(c *Config) { c.FileExtensions = []string{".h", " "} },
			wantErr: "non-empty",
		},
		{
			name:    "bad access",
			mutate:  func(c *Config) { c.Access = "internal" },
			wantErr: "access must be",
		},
		{
			name:    "xml without dir",
			mutate:  func(c *Config) { c.XMLOutput = true; c.XMLDir = "" },
			wantErr: "xml.dir",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateConfig: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godoxygen.yaml")
	body := `source: include
tool:
  version: "1.10.0"
xml:
  enable: true
  dir: build/xml
extensions:
  - .h
  - .hpp
access: private
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if fc.Source != "include" || fc.Tool.Version != "1.10.0" || fc.Access != "private" {
		t.Fatalf("unexpected file config: %+v", fc)
	}
	if fc.XML.Enable == nil || !*fc.XML.Enable || fc.XML.Dir != "build/xml" {
		t.Fatalf("xml section not parsed: %+v", fc.XML)
	}
	if !reflect.DeepEqual(fc.Extensions, []string{".h", ".hpp"}) {
		t.Fatalf("extensions = %v", fc.Extensions)
	}
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godoxygen.json")
	body := `{"source":"lib","tool":{"version":"1.9.8"},"exclude":"*_test.h"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if fc.Source != "lib" || fc.Tool.Version != "1.9.8" || fc.Exclude != "*_test.h" {
		t.Fatalf("unexpected file config: %+v", fc)
	}
}

func TestApplyFileConfigFillsDefaultsOnly(t *testing.T) {
	enable := true
	fc := FileConfig{Source: "fromfile", Access: "private"}
	fc.Tool.Version = "1.10.0"
	fc.XML.Enable = &enable
	fc.XML.Dir = "out/xml"
	fc.Extensions = []string{".hpp"}

	// Fields still at their defaults take the file values.
	cfg := Config{
		SourceDir:      DefaultSourceDir,
		FileExtensions: []string{DefaultExtension},
		Access:         DefaultAccess,
		XMLDir:         DefaultXMLDir,
		DoxyfilePath:   DefaultDoxyfilePath,
	}
	ApplyFileConfig(&cfg, fc)
	if cfg.SourceDir != "fromfile" || cfg.ToolVersion != "1.10.0" || cfg.Access != "private" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.XMLOutput || cfg.XMLDir != "out/xml" {
		t.Fatalf("xml section not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.FileExtensions, []string{".hpp"}) {
		t.Fatalf("extensions = %v", cfg.FileExtensions)
	}

	// Explicit values beat the file.
	cfg = Config{
		SourceDir:      "explicit",
		FileExtensions: []string{".c"},
		Access:         "public",
		ToolVersion:    "1.8.20",
	}
	ApplyFileConfig(&cfg, fc)
	if cfg.SourceDir != "explicit" || cfg.ToolVersion != "1.8.20" {
		t.Fatalf("explicit values lost: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.FileExtensions, []string{".c"}) {
		t.Fatalf("explicit extensions lost: %v", cfg.FileExtensions)
	}
}

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("DOXYGEN_VERSION", "1.10.0")
	t.Setenv("FILE_EXTENSIONS", ".h, .hpp")
	t.Setenv("XML_OUTPUT", "true")
	t.Setenv("ACCESS_LEVEL", "private")

	cfg := Config{
		SourceDir:      DefaultSourceDir,
		FileExtensions: []string{DefaultExtension},
		Access:         DefaultAccess,
	}
	ApplyEnvToConfig(&cfg)
	if cfg.ToolVersion != "1.10.0" {
		t.Fatalf("ToolVersion = %q", cfg.ToolVersion)
	}
	if !reflect.DeepEqual(cfg.FileExtensions, []string{".h", ".hpp"}) {
		t.Fatalf("FileExtensions = %v", cfg.FileExtensions)
	}
	if !cfg.XMLOutput || cfg.Access != "private" {
		t.Fatalf("env booleans/strings not applied: %+v", cfg)
	}

	// Explicit values beat env.
	cfg = Config{ToolVersion: "1.8.20", Access: "public", FileExtensions: []string{".c"}}
	ApplyEnvToConfig(&cfg)
	if cfg.ToolVersion != "1.8.20" {
		t.Fatalf("explicit version lost: %q", cfg.ToolVersion)
	}
	if !reflect.DeepEqual(cfg.FileExtensions, []string{".c"}) {
		t.Fatalf("explicit extensions lost: %v", cfg.FileExtensions)
	}
}

func TestSplitExtensions(t *testing.T) {
	got := SplitExtensions(" .h, .hpp ,,.cpp ")
	want := []string{".h", ".hpp", ".cpp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitExtensions = %v, want %v", got, want)
	}
}
