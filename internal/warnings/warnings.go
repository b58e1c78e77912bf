// Package warnings normalizes Doxygen's stderr into discrete documentation
// diagnostics, discarding the build noise the tool mixes into the same
// stream.
package warnings

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Diagnostic is a single documentation warning emitted by Doxygen, e.g.
// "include/api.h:42: warning: Parameter 'ctx' not documented".
type Diagnostic struct {
	// Location is the "<file>:<line>" locator prefix.
	Location string
	// Text is the message following "warning: ".
	Text string
}

// String reproduces the normalized warning line.
func (d Diagnostic) String() string {
	return d.Location + ": warning: " + d.Text
}

// diagnosticRe is the canonical shape of a Doxygen documentation warning:
// a locator without colons, a line number, the literal "warning: " tag, and
// the message. Anything else on stderr is not a diagnostic.
var diagnosticRe = regexp.MustCompile(`^([^:\n]+:[0-9]+): warning: (.*)$`)

// Filter extracts documentation diagnostics from raw stderr text.
//
// Doxygen wraps long warnings onto continuation lines indented by two
// spaces; those are folded back into their parent line before matching, so
// one logical warning yields one Diagnostic. Ordering follows the source
// text and duplicates are kept as emitted.
//
// With debug set, every discarded non-empty line is surfaced on logger at
// debug level. That side channel never affects the returned slice.
func Filter(raw string, debug bool, logger zerolog.Logger) []Diagnostic {
	if raw == "" {
		return nil
	}

	// A newline followed by exactly two spaces is a wrapped continuation.
	normalized := strings.ReplaceAll(raw, "\n  ", " ")

	var out []Diagnostic
	for _, line := range strings.Split(normalized, "\n") {
		if m := diagnosticRe.FindStringSubmatch(line); m != nil {
			out = append(out, Diagnostic{Location: m[1], Text: m[2]})
			continue
		}
		if debug && strings.TrimSpace(line) != "" {
			logger.Debug().Str("line", line).Msg("non-diagnostic tool output")
		}
	}
	return out
}
