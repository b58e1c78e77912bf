// Package verify confirms that a tool run left usable structured output on
// disk. Doxygen exits zero in some misconfigurations while writing nothing,
// so the directory itself is the source of truth.
package verify

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrEmptyOutput reports that the structured output directory is missing or
// holds no entries after a run that was expected to produce XML.
var ErrEmptyOutput = errors.New("structured output directory is empty")

// StructuredOutput verifies the XML output directory exists and contains at
// least one entry. Content is not validated; presence is the contract. In
// debug mode the listing is logged and index.xml is probed for the number of
// indexed compounds, as a parse hint only.
func StructuredOutput(dir string, debug bool, logger zerolog.Logger) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s was never created", ErrEmptyOutput, dir)
	}
	if err != nil {
		return fmt.Errorf("read structured output directory %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyOutput, dir)
	}
	if debug {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		ev := logger.Debug().Str("dir", dir).Strs("entries", names)
		if n, err := countIndexedCompounds(filepath.Join(dir, "index.xml")); err == nil {
			ev = ev.Int("compounds", n)
		}
		ev.Msg("structured output present")
	}
	return nil
}

// doxygenIndex models the fragment of Doxygen's index.xml needed to count
// what was documented.
type doxygenIndex struct {
	XMLName   xml.Name `xml:"doxygenindex"`
	Compounds []struct {
		Kind string `xml:"kind,attr"`
		Name string `xml:"name"`
	} `xml:"compound"`
}

func countIndexedCompounds(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var idx doxygenIndex
	if err := xml.Unmarshal(raw, &idx); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return len(idx.Compounds), nil
}
