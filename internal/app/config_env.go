package app

import (
	"os"
	"strings"

	"github.com/hyperifyio/godoxygen/internal/install"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (flags) take precedence over env; env takes precedence
// over the config file because this overlay runs before ApplyFileConfig.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.SourceDir == "" || cfg.SourceDir == DefaultSourceDir {
		if v := os.Getenv("SOURCE_DIR"); v != "" {
			cfg.SourceDir = v
		}
	}
	if cfg.ToolVersion == "" || cfg.ToolVersion == install.DefaultVersion {
		if v := os.Getenv("DOXYGEN_VERSION"); v != "" {
			cfg.ToolVersion = v
		}
	}
	if cfg.MirrorURL == "" || cfg.MirrorURL == install.DefaultMirrorURL {
		if v := os.Getenv("DOXYGEN_MIRROR"); v != "" {
			cfg.MirrorURL = v
		}
	}
	if cfg.InstallDir == "" || cfg.InstallDir == install.DefaultDir {
		if v := os.Getenv("DOXYGEN_INSTALL_DIR"); v != "" {
			cfg.InstallDir = v
		}
	}

	if cfg.XMLDir == "" || cfg.XMLDir == DefaultXMLDir {
		if v := os.Getenv("XML_DIR"); v != "" {
			cfg.XMLDir = v
		}
	}
	if defaultExtensions(cfg.FileExtensions) {
		// FILE_EXTENSIONS is comma separated, e.g. ".h,.hpp,.cpp"
		if v := strings.TrimSpace(os.Getenv("FILE_EXTENSIONS")); v != "" {
			cfg.FileExtensions = SplitExtensions(v)
		}
	}
	if cfg.ExcludePattern == "" {
		cfg.ExcludePattern = os.Getenv("EXCLUDE_PATTERN")
	}
	if cfg.Access == "" || cfg.Access == DefaultAccess {
		if v := os.Getenv("ACCESS_LEVEL"); v != "" {
			cfg.Access = v
		}
	}
	if cfg.DoxyfilePath == "" || cfg.DoxyfilePath == DefaultDoxyfilePath {
		if v := os.Getenv("DOXYFILE_PATH"); v != "" {
			cfg.DoxyfilePath = v
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.XMLOutput, "XML_OUTPUT")
	setBool(&cfg.Debug, "DOXYGEN_DEBUG")
}

// SplitExtensions parses a comma separated extension list, trimming blanks.
func SplitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
