package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryFile is the base name of the history file in the cache directory.
const HistoryFile = "history.utf8"

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String renders the entry as one line of the history file.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return "C:" + e.Line
	}

	return "E:" + e.Line
}

// parseHistoryEntry parses a line of the history file. Lines without a
// mode prefix are eval entries.
func parseHistoryEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, "C:"); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	s, _ := strings.CutPrefix(line, "E:")

	return HistoryEntry{Line: s, Mode: modeEval}
}

// History manages command history with file persistence.
// It implements the github.com/lmorg/readline.History interface.
//
// A History with an empty path is kept in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History backed by the file at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is an
// empty history.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseHistoryEntry(line))
		}
	}

	return scanner.Err()
}

// Write appends a new eval entry to the history.
// Implements readline.History interface.
func (h *History) Write(entry string) (int, error) {
	return h.WriteWithMode(entry, modeEval)
}

// WriteWithMode appends a new entry to the history with the specified mode.
// An existing identical entry is moved to the end rather than duplicated.
func (h *History) WriteWithMode(line string, mode inputMode) (int, error) {
	entry := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if entry.Line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return len(entry.Line), nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return len(entry.Line), nil
	}

	if i >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(entry.String() + "\n")
}

// GetLine retrieves a historic line by index.
// Index 0 is the oldest entry.
// Implements readline.History interface.
func (h *History) GetLine(i int) (string, error) {
	e, err := h.GetEntry(i)

	return e.Line, err
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
// Implements readline.History interface.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Dump exports the history lines.
// Implements readline.History interface.
func (h *History) Dump() any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.Line
	}

	return lines
}

// Entries returns a copy of all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	var b strings.Builder

	for _, e := range h.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return b.Len(), os.WriteFile(h.path, []byte(b.String()), 0o600)
}
