// Package install guarantees that a specific Doxygen release is present
// locally before a run, downloading and unpacking the pinned version on
// demand. There is no fallback version: a run either gets exactly the
// release it asked for or fails.
package install

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/godoxygen/internal/fsutil"
)

// DefaultVersion is the pinned Doxygen release used when the caller does not
// request one.
const DefaultVersion = "1.9.8"

// DefaultMirrorURL is the upstream host publishing Doxygen release archives.
const DefaultMirrorURL = "https://www.doxygen.nl/files"

// DefaultDir is where versioned tool binaries are kept when the caller does
// not choose a location.
const DefaultDir = ".godoxygen-dist"

// ErrVersionUnavailable reports that the mirror does not publish the
// requested version. It is terminal: no other version is substituted.
var ErrVersionUnavailable = errors.New("requested doxygen version is not published")

// Installer downloads and stores version-pinned Doxygen binaries.
// The zero value is usable and applies the defaults above.
type Installer struct {
	// Dir is the install root; binaries live at <Dir>/<version>/<exe>.
	Dir string
	// MirrorURL is the release archive host.
	MirrorURL string
	// HTTPClient overrides the default download client.
	HTTPClient *http.Client
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// RequestTimeout bounds each HTTP request. Zero applies a generous
	// download default.
	RequestTimeout time.Duration
	// Logger receives install progress events.
	Logger zerolog.Logger
}

// BinaryPath returns where the given version's executable lives (or would
// live) under the install root.
func (i *Installer) BinaryPath(version string) string {
	return filepath.Join(i.dir(), version, exeName())
}

// IsInstalled reports whether the given version's executable is already
// present.
func (i *Installer) IsInstalled(version string) bool {
	info, err := os.Stat(i.BinaryPath(version))
	return err == nil && !info.IsDir()
}

// EnsureVersion makes the requested version available locally, downloading
// and unpacking the platform archive when missing. It is idempotent: a
// version that is already installed is left untouched and no network request
// is made.
func (i *Installer) EnsureVersion(ctx context.Context, version string) error {
	if version == "" {
		return errors.New("install: version is required")
	}
	bin := i.BinaryPath(version)
	if i.IsInstalled(version) {
		i.Logger.Debug().Str("version", version).Str("path", bin).Msg("doxygen already installed")
		return nil
	}

	url, err := i.archiveURL(version)
	if err != nil {
		return err
	}
	i.Logger.Info().Str("version", version).Str("url", url).Msg("downloading doxygen")

	archive, err := i.download(ctx, url)
	if err != nil {
		return fmt.Errorf("download doxygen %s: %w", version, err)
	}
	defer os.Remove(archive)

	if err := fsutil.CreateDirectories(filepath.Dir(bin)); err != nil {
		return err
	}
	if err := extractTool(archive, url, bin); err != nil {
		return fmt.Errorf("unpack doxygen %s: %w", version, err)
	}
	i.Logger.Info().Str("version", version).Str("path", bin).Msg("doxygen installed")
	return nil
}

// archiveURL builds the release archive URL for the current platform.
func (i *Installer) archiveURL(version string) (string, error) {
	suffix, err := platformSuffix(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}
	return i.mirror() + "/doxygen-" + version + suffix, nil
}

// platformSuffix maps the host platform onto upstream's archive naming.
// Only platforms with a published binary archive are supported; macOS ships
// as a disk image, which this installer does not unpack.
func platformSuffix(goos, goarch string) (string, error) {
	switch goos {
	case "linux":
		return ".linux.bin.tar.gz", nil
	case "windows":
		if goarch == "amd64" {
			return ".windows.x64.bin.zip", nil
		}
		return ".windows.bin.zip", nil
	default:
		return "", fmt.Errorf("install: no doxygen binary archive published for %s/%s", goos, goarch)
	}
}

func exeName() string {
	if runtime.GOOS == "windows" {
		return "doxygen.exe"
	}
	return "doxygen"
}

func (i *Installer) dir() string {
	if i.Dir != "" {
		return i.Dir
	}
	return DefaultDir
}

func (i *Installer) mirror() string {
	if i.MirrorURL != "" {
		return i.MirrorURL
	}
	return DefaultMirrorURL
}
