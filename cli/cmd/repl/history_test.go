package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryEntry_String(t *testing.T) {
	for _, e := range []HistoryEntry{
		{Line: "1 + 2", Mode: modeEval},
		{Line: "vars", Mode: modeCtrl},
		{Line: "C:odd", Mode: modeEval},
	} {
		if got := parseHistoryEntry(e.String()); got != e {
			t.Errorf("parseHistoryEntry(%q) = %+v, want %+v", e.String(), got, e)
		}
	}

	if got := parseHistoryEntry("legacy"); got != (HistoryEntry{Line: "legacy", Mode: modeEval}) {
		t.Errorf("unprefixed line = %+v, want eval entry", got)
	}
}

func TestHistory_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"x = 1", modeEval},
		{"vars", modeCtrl},
		{"x * 2", modeEval},
		{"  ", modeEval},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatalf("WriteWithMode(%q): %v", e.Line, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	// A repeated entry moves to the end.
	if _, err := h.Write("x = 1"); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{
		{"vars", modeCtrl},
		{"x * 2", modeEval},
		{"x = 1", modeEval},
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	for _, hist := range []*History{h, reloaded} {
		got := hist.Entries()
		if len(got) != len(want) {
			t.Fatalf("Entries() = %+v, want %+v", got, want)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "C:vars\nE:x * 2\nE:x = 1\n" {
		t.Errorf("history file = %q", data)
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := NewHistory("")

	_, _ = h.Write("a")
	_, _ = h.WriteWithMode("help", modeCtrl)

	if line, err := h.GetLine(1); err != nil || line != "help" {
		t.Errorf("GetLine(1) = (%q, %v), want help", line, err)
	}

	if _, err := h.GetLine(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(2) error = %v, want ErrOutOfBounds", err)
	}

	if _, err := h.GetEntry(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(-1) error = %v, want ErrOutOfBounds", err)
	}

	dump, ok := h.Dump().([]string)
	if !ok || len(dump) != 2 || dump[0] != "a" {
		t.Errorf("Dump() = %v", h.Dump())
	}
}
