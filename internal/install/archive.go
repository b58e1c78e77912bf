package install

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// errNoBinary reports an archive that does not contain the doxygen
// executable at all, which would indicate a corrupt or repackaged release.
var errNoBinary = errors.New("doxygen executable not found in archive")

// extractTool pulls the doxygen executable out of the downloaded archive and
// places it at dest. Only the executable itself is taken; the tool's native
// library dependencies are expected to come from the host, which is why a
// missing shared library remains a possible startup failure later.
func extractTool(archive, url, dest string) error {
	switch {
	case strings.HasSuffix(url, ".zip"):
		return unzipTool(archive, dest)
	case strings.HasSuffix(url, ".tar.gz"):
		return untarTool(archive, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", url)
	}
}

func untarTool(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return errNoBinary
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !isToolMember(hdr.Name) {
			continue
		}
		return writeBinary(dest, tr)
	}
}

func unzipTool(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if member.FileInfo().IsDir() || !isToolMember(member.Name) {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return fmt.Errorf("open zip entry: %w", err)
		}
		err = writeBinary(dest, rc)
		rc.Close()
		return err
	}
	return errNoBinary
}

// isToolMember matches the executable inside the release archive, e.g.
// "doxygen-1.9.8/bin/doxygen" in the tarball or "doxygen.exe" in the zip.
// Member names are never joined into filesystem paths, so hostile entries
// cannot escape the install directory.
func isToolMember(name string) bool {
	base := path.Base(filepath.ToSlash(name))
	return base == "doxygen" || base == "doxygen.exe"
}

// writeBinary stages the executable in the destination directory and renames
// it into place only after the full copy succeeds. A truncated archive or a
// failed write therefore leaves nothing at dest, and the next install check
// triggers a fresh download instead of accepting a half-written binary.
func writeBinary(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".doxygen-*")
	if err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}
	_, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o755)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("install %s: %w", dest, err)
	}
	return nil
}
