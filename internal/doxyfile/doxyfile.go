// Package doxyfile synthesizes the Doxygen configuration artifact from run
// settings. The mapping is deterministic and total: equal settings always
// produce the same directive values and the same serialized bytes.
package doxyfile

import (
	"fmt"
	"os"
	"strings"
)

// Access selects which member visibility Doxygen extracts.
type Access string

const (
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
)

// Settings are the inputs of the directive mapping. They mirror the
// caller-facing run options one to one.
type Settings struct {
	SourceDir      string
	XMLOutput      bool
	XMLDir         string
	FileExtensions []string
	ExcludePattern string
	Access         Access
	Debug          bool
}

// Doxyfile is a directive set keyed by directive name.
type Doxyfile struct {
	values map[string]string
}

// directiveOrder fixes the serialization order so the written artifact is
// byte-stable across runs.
var directiveOrder = []string{
	"INPUT",
	"RECURSIVE",
	"FILE_PATTERNS",
	"EXCLUDE_PATTERNS",
	"CASE_SENSE_NAMES",
	"EXTRACT_PRIVATE",
	"EXTRACT_STATIC",
	"MACRO_EXPANSION",
	"GENERATE_HTML",
	"GENERATE_LATEX",
	"GENERATE_XML",
	"XML_OUTPUT",
	"QUIET",
	"WARN_NO_PARAMDOC",
	"WARN_AS_ERROR",
}

// listDirectives hold space-separated entries, so their values are never
// wrapped in quotes as a whole.
var listDirectives = map[string]bool{
	"FILE_PATTERNS":    true,
	"EXCLUDE_PATTERNS": true,
}

// Build maps settings onto Doxygen directives.
//
// HTML and LaTeX generation are always off: the XML intermediate
// representation is the only product, toggled by XMLOutput. Name matching is
// case-insensitive to keep generated cross-references stable across
// platforms. WARN_AS_ERROR is set so Doxygen reports warnings through its
// exit status; the runner downgrades that exit back into diagnostic data.
func Build(s Settings) Doxyfile {
	return Doxyfile{values: map[string]string{
		"INPUT":            s.SourceDir,
		"RECURSIVE":        "YES",
		"FILE_PATTERNS":    strings.Join(s.FileExtensions, " "),
		"EXCLUDE_PATTERNS": s.ExcludePattern,
		"CASE_SENSE_NAMES": "NO",
		"EXTRACT_PRIVATE":  yesNo(s.Access == AccessPrivate),
		"EXTRACT_STATIC":   "NO",
		"MACRO_EXPANSION":  "NO",
		"GENERATE_HTML":    "NO",
		"GENERATE_LATEX":   "NO",
		"GENERATE_XML":     yesNo(s.XMLOutput),
		"XML_OUTPUT":       s.XMLDir,
		"QUIET":            yesNo(!s.Debug),
		"WARN_NO_PARAMDOC": "YES",
		"WARN_AS_ERROR":    "YES",
	}}
}

// Directive returns the value for name, or the empty string when the
// directive is not part of the set.
func (d Doxyfile) Directive(name string) string {
	return d.values[name]
}

// Directives returns a copy of the full directive mapping.
func (d Doxyfile) Directives() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Encode serializes the directive set in canonical order using Doxygen's
// "KEY = VALUE" line syntax.
func (d Doxyfile) Encode() []byte {
	var b strings.Builder
	for _, name := range directiveOrder {
		value, ok := d.values[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s = %s\n", name, quote(name, value))
	}
	return []byte(b.String())
}

// WriteFile persists the directive set to path, replacing any artifact left
// by a previous run.
func (d Doxyfile) WriteFile(path string) error {
	if err := os.WriteFile(path, d.Encode(), 0o644); err != nil {
		return fmt.Errorf("write doxyfile: %w", err)
	}
	return nil
}

// quote wraps single-valued directives in double quotes when they contain
// whitespace or a quote character, which Doxygen requires for paths with
// spaces. Embedded quotes are backslash-escaped so the wrapped value stays a
// single string in Doxygen's config syntax.
func quote(name, value string) string {
	if listDirectives[name] {
		return value
	}
	if !strings.ContainsAny(value, " \t\"") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
