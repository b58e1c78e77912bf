// Package runner invokes the installed Doxygen binary and classifies how the
// invocation ended: clean, fatally broken environment, or a run that only
// produced documentation diagnostics.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/godoxygen/internal/warnings"
)

// BinaryLocator resolves a tool version to its executable path.
// Implemented by install.Installer.
type BinaryLocator interface {
	BinaryPath(version string) string
}

// MissingLibraryError reports that the tool could not start because a native
// shared library is absent from the host. This is unrecoverable for the run.
type MissingLibraryError struct {
	Library string
}

func (e *MissingLibraryError) Error() string {
	return fmt.Sprintf("doxygen requires shared library %s, which is not installed", e.Library)
}

// missingLibraryMarker is the fixed substring the dynamic loader prints when
// a shared object cannot be resolved. Doxygen has no structured error
// taxonomy, so this substring test is the discriminator between a broken
// environment and ordinary diagnostic output.
const missingLibraryMarker = "error while loading shared libraries"

var missingLibraryRe = regexp.MustCompile(`error while loading shared libraries: ([^:\s]+)`)

// Runner executes Doxygen against a generated Doxyfile.
type Runner struct {
	Binaries BinaryLocator
	// Debug forwards discarded stderr lines to the log.
	Debug  bool
	Logger zerolog.Logger
}

// Execute runs the pinned Doxygen version against the Doxyfile at
// doxyfilePath, blocking until it finishes. A clean exit yields no
// diagnostics. A missing shared library yields a MissingLibraryError. Any
// other failure is treated as recoverable: its stderr is filtered into
// documentation diagnostics and returned as data.
func (r *Runner) Execute(ctx context.Context, doxyfilePath, version string) ([]warnings.Diagnostic, error) {
	bin := r.Binaries.BinaryPath(version)
	logger := r.Logger.With().Str("run_id", uuid.New().String()).Logger()
	logger.Debug().Str("binary", bin).Str("doxyfile", doxyfilePath).Msg("executing doxygen")

	cmd := exec.CommandContext(ctx, bin, doxyfilePath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr == nil {
		logger.Debug().Dur("duration", duration).Msg("doxygen completed cleanly")
		return nil, nil
	}

	// Start failures (binary unrunnable) produce no stderr; fall back to the
	// exec error text so the loader marker is still detectable.
	failureText := stderr.String()
	if strings.TrimSpace(failureText) == "" {
		failureText = runErr.Error()
	}

	if lib, ok := missingLibrary(failureText); ok {
		return nil, &MissingLibraryError{Library: lib}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	logger.Debug().
		Int("exit_code", exitCode).
		Dur("duration", duration).
		Msg("doxygen exited with diagnostics")

	return warnings.Filter(failureText, r.Debug, logger), nil
}

// missingLibrary reports whether text carries the loader marker, and if so
// which library it names. The name is the marker pattern's first capture
// group; "unknown" stands in when the text is too mangled to capture.
func missingLibrary(text string) (string, bool) {
	if !strings.Contains(text, missingLibraryMarker) {
		return "", false
	}
	if m := missingLibraryRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "unknown", true
}
