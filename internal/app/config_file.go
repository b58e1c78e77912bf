package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/godoxygen/internal/install"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to the flag namespace (-tool.version, -xml.dir).
type FileConfig struct {
	Source string `yaml:"source" json:"source"`

	Tool struct {
		Version string `yaml:"version" json:"version"`
		Mirror  string `yaml:"mirror" json:"mirror"`
		Dir     string `yaml:"dir" json:"dir"`
	} `yaml:"tool" json:"tool"`

	XML struct {
		Enable *bool  `yaml:"enable" json:"enable"`
		Dir    string `yaml:"dir" json:"dir"`
	} `yaml:"xml" json:"xml"`

	Extensions []string `yaml:"extensions" json:"extensions"`
	Exclude    string   `yaml:"exclude" json:"exclude"`
	Access     string   `yaml:"access" json:"access"`
	Doxyfile   string   `yaml:"doxyfile" json:"doxyfile"`
	Debug      bool     `yaml:"debug" json:"debug"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still holding their defaults. Flags and env should already have been
// applied; the file supplies what they left unset.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if (cfg.SourceDir == "" || cfg.SourceDir == DefaultSourceDir) && fc.Source != "" {
		cfg.SourceDir = fc.Source
	}
	if (cfg.ToolVersion == "" || cfg.ToolVersion == install.DefaultVersion) && fc.Tool.Version != "" {
		cfg.ToolVersion = fc.Tool.Version
	}
	if (cfg.MirrorURL == "" || cfg.MirrorURL == install.DefaultMirrorURL) && fc.Tool.Mirror != "" {
		cfg.MirrorURL = fc.Tool.Mirror
	}
	if (cfg.InstallDir == "" || cfg.InstallDir == install.DefaultDir) && fc.Tool.Dir != "" {
		cfg.InstallDir = fc.Tool.Dir
	}

	if !cfg.XMLOutput && fc.XML.Enable != nil && *fc.XML.Enable {
		cfg.XMLOutput = true
	}
	if (cfg.XMLDir == "" || cfg.XMLDir == DefaultXMLDir) && fc.XML.Dir != "" {
		cfg.XMLDir = fc.XML.Dir
	}

	if defaultExtensions(cfg.FileExtensions) && len(fc.Extensions) > 0 {
		cfg.FileExtensions = append([]string{}, fc.Extensions...)
	}
	if cfg.ExcludePattern == "" && fc.Exclude != "" {
		cfg.ExcludePattern = fc.Exclude
	}
	if (cfg.Access == "" || cfg.Access == DefaultAccess) && fc.Access != "" {
		cfg.Access = fc.Access
	}
	if (cfg.DoxyfilePath == "" || cfg.DoxyfilePath == DefaultDoxyfilePath) && fc.Doxyfile != "" {
		cfg.DoxyfilePath = fc.Doxyfile
	}
	if !cfg.Debug && fc.Debug {
		cfg.Debug = true
	}
}

func defaultExtensions(exts []string) bool {
	return len(exts) == 0 || (len(exts) == 1 && exts[0] == DefaultExtension)
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.SourceDir) == "" {
		return errors.New("config: source directory is required")
	}
	if strings.TrimSpace(cfg.ToolVersion) == "" {
		return errors.New("config: tool.version is required (or set DOXYGEN_VERSION)")
	}
	if len(cfg.FileExtensions) == 0 {
		return errors.New("config: at least one file extension is required")
	}
	for _, ext := range cfg.FileExtensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("config: file extensions must be non-empty")
		}
	}
	if cfg.Access != "public" && cfg.Access != "private" {
		return fmt.Errorf("config: access must be public or private, got %q", cfg.Access)
	}
	if strings.TrimSpace(cfg.DoxyfilePath) == "" {
		return errors.New("config: doxyfile path is required")
	}
	if cfg.XMLOutput && strings.TrimSpace(cfg.XMLDir) == "" {
		return errors.New("config: xml.dir is required when xml output is enabled")
	}
	return nil
}
