package verify

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestStructuredOutputAcceptsNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.xml"), []byte("<doxygenindex/>"), 0o644); err != nil {
		t.Fatalf("seed dir: %v", err)
	}

	if err := StructuredOutput(dir, false, zerolog.New(io.Discard)); err != nil {
		t.Fatalf("StructuredOutput: %v", err)
	}
}

func TestStructuredOutputRejectsEmptyDir(t *testing.T) {
	err := StructuredOutput(t.TempDir(), false, zerolog.New(io.Discard))
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("got %v, want ErrEmptyOutput", err)
	}
}

func TestStructuredOutputRejectsMissingDir(t *testing.T) {
	err := StructuredOutput(filepath.Join(t.TempDir(), "never-created"), false, zerolog.New(io.Discard))
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("got %v, want ErrEmptyOutput", err)
	}
}

func TestStructuredOutputDebugProbesIndex(t *testing.T) {
	dir := t.TempDir()
	index := `<?xml version="1.0"?>
<doxygenindex>
  <compound refid="classFoo" kind="class"><name>Foo</name></compound>
  <compound refid="structBar" kind="struct"><name>Bar</name></compound>
</doxygenindex>`
	if err := os.WriteFile(filepath.Join(dir, "index.xml"), []byte(index), 0o644); err != nil {
		t.Fatalf("seed dir: %v", err)
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	if err := StructuredOutput(dir, true, logger); err != nil {
		t.Fatalf("StructuredOutput: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"compounds":2`)) {
		t.Fatalf("debug log missing compound count: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("index.xml")) {
		t.Fatalf("debug log missing entry listing: %s", buf.String())
	}
}

func TestCountIndexedCompounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.xml")
	if err := os.WriteFile(path, []byte(`<doxygenindex><compound kind="file"><name>a.h</name></compound></doxygenindex>`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	n, err := countIndexedCompounds(path)
	if err != nil {
		t.Fatalf("countIndexedCompounds: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d compounds, want 1", n)
	}
}
