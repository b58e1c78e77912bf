package app

// Defaults shared by flag definitions and the config-file overlay, which
// treats a field still holding its default as unset.
const (
	DefaultSourceDir    = "."
	DefaultXMLDir       = "xml"
	DefaultDoxyfilePath = ".godoxygen/Doxyfile"
	DefaultAccess       = "public"
	DefaultExtension    = ".h"
)

// Config holds runtime configuration for a documentation extraction run.
type Config struct {
	// Source tree
	SourceDir      string
	FileExtensions []string
	ExcludePattern string
	Access         string // "public" or "private"

	// Tool pin
	ToolVersion string
	InstallDir  string
	MirrorURL   string

	// Artifacts
	DoxyfilePath string
	XMLOutput    bool
	XMLDir       string

	// Behavior
	Debug bool
}
