package warnings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFilter_KeepsDiagnosticsDropsNoise(t *testing.T) {
	raw := "a.h:10: warning: Parameter 'x' not documented\n" +
		"  (see declaration)\n" +
		"b.h:20: warning: Undocumented return value\n" +
		"Random noise line"

	got := Filter(raw, false, zerolog.Nop())
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(got), got)
	}
	want0 := "a.h:10: warning: Parameter 'x' not documented (see declaration)"
	want1 := "b.h:20: warning: Undocumented return value"
	if got[0].String() != want0 {
		t.Errorf("first = %q, want %q", got[0].String(), want0)
	}
	if got[1].String() != want1 {
		t.Errorf("second = %q, want %q", got[1].String(), want1)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	if got := Filter("", false, zerolog.Nop()); len(got) != 0 {
		t.Fatalf("expected no diagnostics from empty input, got %v", got)
	}
}

func TestFilter_LocationAndTextSplit(t *testing.T) {
	got := Filter("src/engine.h:7: warning: Missing brief description", false, zerolog.Nop())
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	if got[0].Location != "src/engine.h:7" {
		t.Errorf("Location = %q, want %q", got[0].Location, "src/engine.h:7")
	}
	if got[0].Text != "Missing brief description" {
		t.Errorf("Text = %q, want %q", got[0].Text, "Missing brief description")
	}
}

func TestFilter_PreservesOrderAndDuplicates(t *testing.T) {
	raw := "z.h:1: warning: dup\n" +
		"a.h:2: warning: other\n" +
		"z.h:1: warning: dup\n"

	got := Filter(raw, false, zerolog.Nop())
	if len(got) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(got))
	}
	if got[0].String() != "z.h:1: warning: dup" || got[2].String() != "z.h:1: warning: dup" {
		t.Errorf("duplicates must survive in order, got %v", got)
	}
	if got[1].Location != "a.h:2" {
		t.Errorf("ordering not preserved: %v", got)
	}
}

func TestFilter_RejectsNonDiagnosticShapes(t *testing.T) {
	cases := []string{
		"warning: no locator",
		"a.h: warning: no line number",
		"a.h:abc: warning: non-numeric line",
		"a.h:10: error: not a warning",
		"Searching for include files...",
	}
	for _, raw := range cases {
		if got := Filter(raw, false, zerolog.Nop()); len(got) != 0 {
			t.Errorf("Filter(%q) = %v, want none", raw, got)
		}
	}
}

func TestFilter_DebugSideChannelDoesNotAlterResult(t *testing.T) {
	raw := "a.h:10: warning: ok\nsome build banner\n"

	quiet := Filter(raw, false, zerolog.Nop())

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	loud := Filter(raw, true, logger)

	if len(quiet) != len(loud) || len(loud) != 1 {
		t.Fatalf("debug mode changed results: quiet=%v loud=%v", quiet, loud)
	}
	if !strings.Contains(buf.String(), "some build banner") {
		t.Errorf("expected discarded line in debug log, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "a.h:10") {
		t.Errorf("kept diagnostics should not hit the debug side channel, got %q", buf.String())
	}
}
